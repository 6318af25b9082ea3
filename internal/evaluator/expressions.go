package evaluator

import (
	"math"

	"github.com/funvibe/funqy/internal/ast"
)

// evalTuple builds a tuple, taking the tensor product of superposed components.
func (e *Evaluator) evalTuple(node *ast.TupleLiteral, env *Environment) (Value, error) {
	if len(node.Elements) == 0 {
		return Unit, nil
	}
	components := make([]Value, len(node.Elements))
	for i, el := range node.Elements {
		val, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		components[i] = val
	}
	if err := e.checkBranches(TensorCount(components)); err != nil {
		return nil, err
	}
	return TensorN(components), nil
}

func (e *Evaluator) evalCall(node *ast.CallExpression, env *Environment) (Value, error) {
	fn, err := e.Eval(node.Function, env)
	if err != nil {
		return nil, err
	}
	arg, err := e.Eval(node.Argument(), env)
	if err != nil {
		return nil, err
	}
	return e.Apply(fn, arg)
}

// Apply calls a closure. Case tables and refutable parameters go through the
// extraction engine, so a superposed argument is processed branch by branch.
func (e *Evaluator) Apply(fn Value, arg Value) (Value, error) {
	pure, ok := Pure(fn)
	c, isClosure := pure.(*Closure)
	if !ok || !isClosure {
		return nil, newError(PatternMismatch, "cannot apply %s: not a function", fn.Inspect())
	}
	callEnv := c.Env
	if c.Name != "" {
		callEnv = callEnv.With(c.Name, c)
	}
	if c.Cases != nil {
		return e.Extract(arg, c.Cases, callEnv)
	}
	if ast.IsIrrefutable(c.Parameter) {
		bodyEnv, err := Bind(c.Parameter, arg, callEnv)
		if err != nil {
			return nil, err
		}
		return e.Eval(c.Body, bodyEnv)
	}
	return e.Extract(arg, []*ast.MatchCase{{Token: c.Parameter.GetToken(), Pattern: c.Parameter, Body: c.Body}}, callEnv)
}

// evalIf branches classically on an atom of a two-variant type (the second
// variant is true) and through extraction on a superposed condition.
func (e *Evaluator) evalIf(node *ast.IfExpression, env *Environment) (Value, error) {
	cond, err := e.Eval(node.Condition, env)
	if err != nil {
		return nil, err
	}
	if atom, ok := cond.(*Atom); ok {
		if err := checkBoolean(atom); err != nil {
			return nil, err
		}
		if atom.Index == 1 {
			return e.Eval(node.Consequence, env)
		}
		return e.Eval(node.Alternative, env)
	}

	branches := Branches(cond)
	if len(branches) == 0 {
		return nil, newError(DegenerateState, "condition is the empty superposition")
	}
	first, ok := branches[0].Value.(*Atom)
	if !ok {
		return nil, newError(PatternMismatch, "condition must be a boolean atom, got %s", cond.Inspect())
	}
	if err := checkBoolean(first); err != nil {
		return nil, err
	}
	cases := []compiledCase{
		{matcher: atomMatcher{atom: &Atom{Data: first.Data, Index: 1}}, body: node.Consequence},
		{matcher: atomMatcher{atom: &Atom{Data: first.Data, Index: 0}}, body: node.Alternative},
	}
	return e.extractCompiled(cond, cases, env)
}

func checkBoolean(a *Atom) error {
	if a.Data == nil || len(a.Data.Variants) != 2 {
		return newError(PatternMismatch, "condition must have a two-variant type, got %s", a.Inspect())
	}
	return nil
}

// evalSup forms the normalized union of its arguments' branches.
func (e *Evaluator) evalSup(node *ast.SupExpression, env *Environment) (Value, error) {
	args := make([]Value, len(node.Arguments))
	total := 0
	for i, argExpr := range node.Arguments {
		val, err := e.Eval(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
		total += len(Branches(val))
	}
	if err := e.checkBranches(total); err != nil {
		return nil, err
	}
	return Normalize(Merge(Union(args...)))
}

// evalAmplitude applies @[phase, magnitude]; phase is in units of π.
func (e *Evaluator) evalAmplitude(node *ast.AmplitudeExpression, env *Environment) (Value, error) {
	val, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	return Scale(val, Polar(node.Magnitude, node.Phase*math.Pi)), nil
}

// evalRepeat builds the n-fold tensor power of an expression. The expression is
// re-evaluated for every component rather than copying a superposed value.
func (e *Evaluator) evalRepeat(node *ast.RepeatExpression, env *Environment) (Value, error) {
	if node.Count == 1 {
		return e.Eval(node.Value, env)
	}
	components := make([]Value, node.Count)
	for i := range components {
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		components[i] = val
	}
	if err := e.checkBranches(TensorCount(components)); err != nil {
		return nil, err
	}
	return TensorN(components), nil
}

func (e *Evaluator) evalBlock(node *ast.BlockExpression, env *Environment) (Value, error) {
	scope := env
	for _, stmt := range node.Statements {
		next, _, err := e.execStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		scope = next
	}
	return e.Eval(node.Result, scope)
}

func (e *Evaluator) evalInvert(node *ast.InvertExpression, env *Environment) (Value, error) {
	fn, err := e.Eval(node.Function, env)
	if err != nil {
		return nil, err
	}
	pure, _ := Pure(fn)
	c, ok := pure.(*Closure)
	if !ok {
		return nil, newError(NotInvertible, "cannot invert %s: not a function", fn.Inspect())
	}
	return e.Invert(c)
}
