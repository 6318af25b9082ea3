package evaluator

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/prettyprinter"
)

// Closure is a user function: either a lambda (Parameter, Body) or a case
// table (Cases), together with its defining environment.
type Closure struct {
	Name      string // set by let; bound to the closure itself on application
	Parameter ast.Pattern
	Body      ast.Expression
	Cases     []*ast.MatchCase
	Env       *Environment
}

func (c *Closure) Type() ValueType { return CLOSURE_OBJ }
func (c *Closure) value()          {}

func (c *Closure) Inspect() string {
	if c.Cases != nil {
		return prettyprinter.Inline(&ast.CaseFunction{Cases: c.Cases})
	}
	if c.Parameter == nil {
		return "<closure>"
	}
	return prettyprinter.Inline(&ast.FunctionLiteral{Parameter: c.Parameter, Body: c.Body})
}

// Table returns the closure's case table. A lambda whose body immediately
// extracts its own parameter (\x -> extract x { ... }) also counts.
func (c *Closure) Table() ([]*ast.MatchCase, bool) {
	if c.Cases != nil {
		return c.Cases, true
	}
	param, ok := c.Parameter.(*ast.IdentifierPattern)
	if !ok {
		return nil, false
	}
	ext, ok := c.Body.(*ast.ExtractExpression)
	if !ok {
		return nil, false
	}
	if id, ok := ext.Scrutinee.(*ast.Identifier); ok && id.Value == param.Value {
		return ext.Cases, true
	}
	return nil, false
}

// named returns a copy of the closure carrying a self-reference name.
func (c *Closure) named(name string) *Closure {
	cp := *c
	cp.Name = name
	return &cp
}
