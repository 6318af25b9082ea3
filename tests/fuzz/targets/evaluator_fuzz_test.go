package targets

import (
	"testing"

	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/funvibe/funqy/internal/prettyprinter"
	"github.com/funvibe/funqy/tests/fuzz/generators"
)

// FuzzEvaluator runs generated programs: failures must be typed errors, and a
// formatted program must evaluate to the same value as its source.
func FuzzEvaluator(f *testing.F) {
	f.Add([]byte{0, 3, 5})
	f.Add([]byte{2, 9, 9, 1, 4, 6, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 512 {
			return
		}
		src := generators.NewFromData(data).GenerateProgram()
		val, err := evalSource(src, evaluator.NewFixedSource(0.3, 0.7))
		if err != nil {
			checkTypedError(t, src, err)
			return
		}

		prog, err := parser.ParseSource(src, "fuzz.fqy")
		if err != nil {
			t.Fatal(err)
		}
		formatted := prettyprinter.Print(prog)
		again, err := evalSource(formatted, evaluator.NewFixedSource(0.3, 0.7))
		if err != nil {
			t.Fatalf("formatted program failed:\n%s\n%v", formatted, err)
		}
		if !evaluator.Equal(val, again) {
			t.Fatalf("formatting changed the result: %s vs %s", val.Inspect(), again.Inspect())
		}
	})
}

func TestGeneratedProgramsFailTyped(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		src := generators.New(seed).GenerateProgram()
		if _, err := evalSource(src, evaluator.NewFixedSource(0.5)); err != nil {
			checkTypedError(t, src, err)
		}
	}
}
