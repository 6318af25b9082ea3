package backend

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/lexer"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, src, file string) *pipeline.PipelineContext {
	t.Helper()
	tw := NewTreeWalk(func(e *evaluator.Evaluator) {
		e.Out = io.Discard
		e.Random = evaluator.NewFixedSource(0.9)
	})
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = file
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		NewExecutionProcessor(tw),
	).Run(ctx)
}

func TestTreeWalkRun(t *testing.T) {
	ctx := runSource(t, `import "std/gates"
print bell(F, F)
measure(had(F))`, "main.fqy")
	require.Empty(t, ctx.Errors)
	assert.Equal(t, []string{"{(F, F): 0.7071, (T, T): 0.7071}"}, ctx.Prints)
	result, ok := ctx.Result.(evaluator.Value)
	require.True(t, ok)
	assert.Equal(t, "T", result.Inspect())
}

func TestRelativeImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.fqy"), []byte(`import "std/bool"
let flip = not`), 0o644))
	ctx := runSource(t, "import \"./lib\"\nflip(T)", filepath.Join(dir, "main.fqy"))
	require.Empty(t, ctx.Errors)
	assert.Equal(t, "F", ctx.Result.(evaluator.Value).Inspect())
}

func TestRuntimeErrorDiagnostic(t *testing.T) {
	ctx := runSource(t, "import \"std/bool\"\nprint T\nextract sup(F, T) { F => T }", "bad.fqy")
	require.Len(t, ctx.Errors, 1)
	d := ctx.Errors[0]
	assert.Equal(t, diagnostics.ErrR001, d.Code)
	assert.Equal(t, 3, d.Token.Line)
	assert.Contains(t, d.Error(), "bad.fqy:3:")
	assert.Contains(t, d.Error(), "NonExhaustiveMatch")
	assert.True(t, errors.Is(d, evaluator.ErrNonExhaustiveMatch))
	// prints before the failure are kept
	assert.Equal(t, []string{"T"}, ctx.Prints)
}

func TestAssertionDiagnostic(t *testing.T) {
	ctx := runSource(t, "import \"std/bool\"\nassert T == F", "assert.fqy")
	require.Len(t, ctx.Errors, 1)
	assert.Contains(t, ctx.Errors[0].Error(), "expected T, got F")
	assert.ErrorIs(t, ctx.Errors[0], evaluator.ErrAssertionFailed)
}

func TestParseErrorSkipsExecution(t *testing.T) {
	ctx := runSource(t, "let = T", "parse.fqy")
	require.NotEmpty(t, ctx.Errors)
	assert.Nil(t, ctx.Result)
	assert.NotEqual(t, diagnostics.ErrR001, ctx.Errors[0].Code)
}
