package prettyprinter_test

import (
	"testing"

	"github.com/funvibe/funqy/internal/parser"
	"github.com/funvibe/funqy/internal/prettyprinter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintProgram(t *testing.T) {
	input := `data Bool = F | T
import "std/gates"
let not = fn { F => T, T => F }
let x = sup(F, @[1] T)
assert x == had(T)
print measure(repeat(x, 2))
let (a, b) = (T, F)
extract (a, b) { (F, y) | (y, F) => y, ~_ => F, _ => T }`

	expected := `data Bool = F | T
import "std/gates"

let not = fn {
    F => T
    T => F
}

let x = sup(F, @[1] T)
assert x == had(T)
print measure(repeat(x, 2))
let (a, b) = (T, F)
extract (a, b) {
    (F, y) | (y, F) => y
    ~_              => F
    _               => T
}
`

	prog, err := parser.ParseSource(input, "fmt.fqy")
	require.NoError(t, err)
	assert.Equal(t, expected, prettyprinter.Print(prog))
}

func TestPrintIsStable(t *testing.T) {
	inputs := []string{
		`let f = \(a, b) -> if a then inv(g)(b) else phf(b)`,
		`let y = { let z = @[0.5, 2] T; (z, z) }`,
		`(\x -> x)(T)`,
		`extract x { ~(F | T) => F }`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			prog, err := parser.ParseSource(input, "fmt.fqy")
			require.NoError(t, err)
			once := prettyprinter.Print(prog)

			reparsed, err := parser.ParseSource(once, "fmt.fqy")
			require.NoError(t, err)
			assert.Equal(t, once, prettyprinter.Print(reparsed))
		})
	}
}

func TestInline(t *testing.T) {
	prog, err := parser.ParseSource("fn {\n  F => { let x = T; x }\n  T => F\n}", "inline.fqy")
	require.NoError(t, err)
	assert.Equal(t, "fn { F => { let x = T; x }, T => F }\n", prettyprinter.Inline(prog))
}
