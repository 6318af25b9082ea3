package evaluator

import (
	"github.com/funvibe/funqy/internal/ast"
)

type compiledCase struct {
	matcher matcher
	body    ast.Expression
}

// Extract destructures every branch of scrutinee with the first matching case,
// evaluates that case's body, weights the result by the branch amplitude, and
// returns the merged, normalized sum over all branches.
func (e *Evaluator) Extract(scrutinee Value, cases []*ast.MatchCase, env *Environment) (Value, error) {
	compiled := make([]compiledCase, len(cases))
	for i, c := range cases {
		m, err := compilePattern(c.Pattern, env)
		if err != nil {
			return nil, err
		}
		compiled[i] = compiledCase{matcher: m, body: c.Body}
	}
	return e.extractCompiled(scrutinee, compiled, env)
}

func (e *Evaluator) extractCompiled(scrutinee Value, cases []compiledCase, env *Environment) (Value, error) {
	branches := Branches(scrutinee)
	if err := checkShapes(branches); err != nil {
		return nil, err
	}

	var out []Branch
	for _, b := range branches {
		matched := false
		for _, c := range cases {
			st := newMatchState(b.Amp)
			ok, err := c.matcher.match(b.Value, st)
			if err != nil {
				return nil, withPosition(err, c.body.GetToken())
			}
			if !ok {
				continue
			}
			matched = true
			result, err := e.Eval(c.body, env.Extend(st.bindings))
			if err != nil {
				return nil, err
			}
			for _, rb := range Branches(result) {
				out = append(out, Branch{Value: rb.Value, Amp: rb.Amp * st.amp})
			}
			if err := e.checkBranches(len(out)); err != nil {
				return nil, err
			}
			break
		}
		if !matched {
			return nil, newError(NonExhaustiveMatch, "no case matches %s", b.Value.Inspect())
		}
	}
	return Normalize(Merge(newState(out)))
}

// checkShapes rejects superpositions whose branches do not share one shape.
func checkShapes(branches []Branch) error {
	if len(branches) < 2 {
		return nil
	}
	want := shapeOf(branches[0].Value)
	for _, b := range branches[1:] {
		if got := shapeOf(b.Value); got != want {
			return newError(PatternMismatch, "superposition mixes values of shape %s and %s", want, got)
		}
	}
	return nil
}
