package evaluator

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/token"
)

// Invert builds the inverse of a case-table function by swapping every case's
// pattern and body. Each body must be a constructor or a tuple of them, each
// pattern must be a literal, and no two cases may share an input or an output.
func (e *Evaluator) Invert(c *Closure) (*Closure, error) {
	cases, ok := c.Table()
	if !ok {
		return nil, newError(NotInvertible, "only case-table functions can be inverted")
	}

	inverted := make([]*ast.MatchCase, len(cases))
	var inputs, outputs []Value
	for i, mc := range cases {
		outPattern, err := patternFromExpression(mc.Body)
		if err != nil {
			return nil, withPosition(err, mc.Body.GetToken())
		}
		inExpr, err := expressionFromPattern(mc.Pattern)
		if err != nil {
			return nil, withPosition(err, mc.Pattern.GetToken())
		}

		in, err := e.Eval(inExpr, c.Env)
		if err != nil {
			return nil, err
		}
		out, err := e.Eval(mc.Body, c.Env)
		if err != nil {
			return nil, err
		}
		for _, prev := range inputs {
			if Equal(prev, in) {
				return nil, withPosition(newError(NotInvertible, "input %s appears in more than one case", in.Inspect()), mc.Token)
			}
		}
		for _, prev := range outputs {
			if Equal(prev, out) {
				return nil, withPosition(newError(NotInvertible, "output %s is produced by more than one case", out.Inspect()), mc.Body.GetToken())
			}
		}
		inputs = append(inputs, in)
		outputs = append(outputs, out)

		inverted[i] = &ast.MatchCase{Token: outPattern.GetToken(), Pattern: outPattern, Body: inExpr}
	}

	e.Log.Debug().Int("cases", len(inverted)).Msg("inverted function")
	return &Closure{Cases: inverted, Env: c.Env}, nil
}

// patternFromExpression reads a literal expression back as a pattern.
func patternFromExpression(expr ast.Expression) (ast.Pattern, error) {
	switch expr := expr.(type) {
	case *ast.Identifier:
		if !expr.IsConstructor() {
			return nil, newError(NotInvertible, "output %s is a variable, not a literal", expr.Value)
		}
		return &ast.ConstructorPattern{Token: expr.Token, Name: expr.Value}, nil
	case *ast.TupleLiteral:
		elems := make([]ast.Pattern, len(expr.Elements))
		for i, el := range expr.Elements {
			p, err := patternFromExpression(el)
			if err != nil {
				return nil, err
			}
			elems[i] = p
		}
		return &ast.TuplePattern{Token: expr.Token, Elements: elems}, nil
	}
	return nil, newError(NotInvertible, "output %q is not a literal value", expr.TokenLiteral())
}

// expressionFromPattern reads a literal pattern back as an expression.
func expressionFromPattern(p ast.Pattern) (ast.Expression, error) {
	switch p := p.(type) {
	case *ast.ConstructorPattern:
		tok := p.Token
		tok.Type = token.IDENT_UPPER
		return &ast.Identifier{Token: tok, Value: p.Name}, nil
	case *ast.TuplePattern:
		elems := make([]ast.Expression, len(p.Elements))
		for i, el := range p.Elements {
			ex, err := expressionFromPattern(el)
			if err != nil {
				return nil, err
			}
			elems[i] = ex
		}
		return &ast.TupleLiteral{Token: p.Token, Elements: elems}, nil
	}
	return nil, newError(NotInvertible, "pattern %q does not name a single input", p.TokenLiteral())
}
