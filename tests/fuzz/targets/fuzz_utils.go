package targets

import (
	"errors"
	"io"
	"testing"

	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/parser"
)

// fuzzLimits keeps generated programs cheap.
var fuzzLimits = evaluator.Limits{MaxDepth: 500, MaxSteps: 200000, MaxBranches: 1 << 10}

// evalSource runs src with the given random source and returns its result.
func evalSource(src string, random evaluator.RandomSource) (evaluator.Value, error) {
	prog, err := parser.ParseSource(src, "fuzz.fqy")
	if err != nil {
		return nil, err
	}
	e := evaluator.New()
	e.Out = io.Discard
	e.Random = random
	e.Limits = fuzzLimits
	val, _, err := e.EvalProgram(prog, evaluator.NewEnvironment())
	return val, err
}

// checkTypedError fails unless err is one of the evaluator's typed errors.
func checkTypedError(t *testing.T, src string, err error) {
	t.Helper()
	var (
		rerr *evaluator.RuntimeError
		aerr *evaluator.AssertionError
	)
	switch {
	case errors.As(err, &aerr):
	case errors.As(err, &rerr):
		if rerr.Kind == evaluator.Internal {
			t.Fatalf("internal error on generated program:\n%s\n%v", src, err)
		}
	default:
		t.Fatalf("untyped error on generated program:\n%s\n%v", src, err)
	}
}
