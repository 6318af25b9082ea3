package funqy_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/funqy/internal/evaluator"
	funqy "github.com/funvibe/funqy/pkg/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentBindings(t *testing.T) {
	in := funqy.New()

	_, err := in.Eval(`import "std/gates"`)
	require.NoError(t, err)
	_, err = in.Eval(`let pair = bell(F, F)`)
	require.NoError(t, err)

	res, err := in.Eval(`pair`)
	require.NoError(t, err)
	assert.Equal(t, "{(F, F): 0.7071, (T, T): 0.7071}", res.String())

	v, ok := in.Lookup("pair")
	require.True(t, ok)
	assert.Equal(t, res.Value.Inspect(), v.Inspect())
	assert.Contains(t, in.Names(), "had")
}

func TestPrintsPerCall(t *testing.T) {
	var out bytes.Buffer
	in := funqy.New(funqy.WithOutput(&out))

	res, err := in.Eval("data Bool = F | T\nprint T\nprint F")
	require.NoError(t, err)
	assert.Equal(t, []string{"T", "F"}, res.Prints)
	assert.Nil(t, res.Value)
	assert.Equal(t, "", res.String())

	res, err = in.Eval("print (T, F)")
	require.NoError(t, err)
	assert.Equal(t, []string{"(T, F)"}, res.Prints)
	assert.Equal(t, ":: T\n:: F\n:: (T, F)\n", out.String())
}

func TestErrorsKeepEarlierBindings(t *testing.T) {
	in := funqy.New()
	_, err := in.Eval("data Bool = F | T\nlet x = T\nlet y = nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrUnboundIdentifier))

	res, err := in.Eval("x")
	require.NoError(t, err)
	assert.Equal(t, "T", res.String())

	_, err = in.Eval("let = T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<eval>:")
}

func TestSeededMeasurement(t *testing.T) {
	run := func() []string {
		in := funqy.New(funqy.WithSeed(42))
		_, err := in.Eval(`import "std/gates"`)
		require.NoError(t, err)
		var outcomes []string
		for range 20 {
			res, err := in.Eval("measure(had(F))")
			require.NoError(t, err)
			outcomes = append(outcomes, res.String())
		}
		return outcomes
	}
	assert.Equal(t, run(), run())
}

func TestMeasureAndSnapshot(t *testing.T) {
	in := funqy.New(funqy.WithRandom(evaluator.NewFixedSource(0.1)))
	res, err := in.Eval("import \"std/gates\"\nhad(T)")
	require.NoError(t, err)

	snap := funqy.Snapshot(res.Value)
	require.Len(t, snap.Branches, 2)
	assert.InDelta(t, 0.5, snap.Branches[0].Probability, 1e-9)

	v, err := in.Measure(res.Value)
	require.NoError(t, err)
	assert.Equal(t, "F", v.Inspect())
}

func TestEvalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.fqy"), []byte("import \"std/bool\"\nlet id = \\x -> x"), 0o644))
	main := filepath.Join(dir, "main.fqy")
	require.NoError(t, os.WriteFile(main, []byte("import \"./lib\"\nid(not(F))"), 0o644))

	in := funqy.New()
	res, err := in.EvalFile(main)
	require.NoError(t, err)
	assert.Equal(t, "T", res.String())

	_, err = in.EvalFile(filepath.Join(dir, "missing.fqy"))
	assert.Error(t, err)
}

func TestLimitsAndCancellation(t *testing.T) {
	in := funqy.New(funqy.WithLimits(funqy.Limits{MaxDepth: 100}))
	_, err := in.Eval("data Bool = F | T\nlet loop = \\x -> loop(x)\nloop(T)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrResourceExhausted))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in = funqy.New(funqy.WithLimits(funqy.Limits{}))
	_, err = in.EvalContext(ctx, "data Bool = F | T\nlet loop = \\x -> loop(x)\nloop(T)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrResourceExhausted))
}
