package parser

import (
	"testing"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := ParseSource(input, "test.fqy")
	require.NoError(t, err)
	return prog
}

func TestDataDeclaration(t *testing.T) {
	prog := parse(t, "data Bool = F | T")
	require.Len(t, prog.Statements, 1)
	dd, ok := prog.Statements[0].(*ast.DataDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Bool", dd.Name.Value)
	require.Len(t, dd.Variants, 2)
	assert.Equal(t, "F", dd.Variants[0].Value)
	assert.Equal(t, "T", dd.Variants[1].Value)
}

func TestCaseTableSeparators(t *testing.T) {
	inputs := []string{
		"let f = fn { F => T, T => F }",
		"let f = fn {\n    F => T\n    T => F\n}",
		"let f = fn { F => T; T => F }",
		"let f = fn {\n    F => T,\n    T => F,\n}",
	}
	for _, input := range inputs {
		prog := parse(t, input)
		require.Len(t, prog.Statements, 1, input)
		let := prog.Statements[0].(*ast.LetStatement)
		cf, ok := let.Value.(*ast.CaseFunction)
		require.True(t, ok, input)
		assert.Len(t, cf.Cases, 2, input)
	}
}

func TestCallArgumentsFormTuple(t *testing.T) {
	prog := parse(t, "cnot(had(F), F)")
	es := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := es.Expression.(*ast.CallExpression)
	require.True(t, ok)
	arg, ok := call.Argument().(*ast.TupleLiteral)
	require.True(t, ok)
	assert.Len(t, arg.Elements, 2)

	prog = parse(t, "not(F)")
	call = prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	_, ok = call.Argument().(*ast.Identifier)
	assert.True(t, ok)
}

func TestPatterns(t *testing.T) {
	prog := parse(t, "extract x { ~(F, _) | (T, y) => y }")
	ext := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ExtractExpression)
	require.Len(t, ext.Cases, 1)
	alt, ok := ext.Cases[0].Pattern.(*ast.AlternativePattern)
	require.True(t, ok)
	require.Len(t, alt.Alternatives, 2)

	phase, ok := alt.Alternatives[0].(*ast.PhasePattern)
	require.True(t, ok)
	tuple, ok := phase.Pattern.(*ast.TuplePattern)
	require.True(t, ok)
	assert.IsType(t, &ast.ConstructorPattern{}, tuple.Elements[0])
	assert.IsType(t, &ast.WildcardPattern{}, tuple.Elements[1])
	assert.IsType(t, &ast.IdentifierPattern{}, alt.Alternatives[1].(*ast.TuplePattern).Elements[1])
}

func TestAmplitudeAnnotation(t *testing.T) {
	prog := parse(t, "@[-0.5, 2] T")
	amp, ok := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AmplitudeExpression)
	require.True(t, ok)
	assert.Equal(t, -0.5, amp.Phase)
	assert.Equal(t, 2.0, amp.Magnitude)

	prog = parse(t, "@[1] T")
	amp = prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AmplitudeExpression)
	assert.Equal(t, 1.0, amp.Magnitude)
}

func TestStatementsAndBlocks(t *testing.T) {
	prog := parse(t, `import "std/gates"
let (a, b) = (T, F)
assert a == { let c = b; c }
print repeat(a, 3)
if a then b else inv(f)(b)`)
	require.Len(t, prog.Statements, 5)
	assert.IsType(t, &ast.ImportStatement{}, prog.Statements[0])
	assert.IsType(t, &ast.LetStatement{}, prog.Statements[1])
	as := prog.Statements[2].(*ast.AssertStatement)
	block, ok := as.Actual.(*ast.BlockExpression)
	require.True(t, ok)
	assert.Len(t, block.Statements, 1)
	rep := prog.Statements[3].(*ast.PrintStatement).Value.(*ast.RepeatExpression)
	assert.Equal(t, 3, rep.Count)
	ifExpr := prog.Statements[4].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	assert.IsType(t, &ast.CallExpression{}, ifExpr.Alternative)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing arrow", "fn { F T }"},
		{"empty table", "fn { }"},
		{"unterminated table", "fn { F => T"},
		{"bad repeat count", "repeat(T, 0)"},
		{"fractional repeat", "repeat(T, 1.5)"},
		{"empty sup", "sup()"},
		{"negative magnitude", "@[0, -1] T"},
		{"illegal character", "let x = $"},
		{"block without result", "{ let x = T }"},
		{"dangling assert", "assert T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.input, "bad.fqy")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.fqy:")
		})
	}
}
