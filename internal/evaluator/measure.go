package evaluator

import (
	"gonum.org/v1/gonum/floats"
)

// Measure draws one branch of v with probability |amplitude|², using the
// evaluator's random source, and returns that branch's plain value. The input
// is never modified.
func (e *Evaluator) Measure(v Value) (Value, error) {
	if !IsSuperposed(v) {
		pure, _ := Pure(v)
		return pure, nil
	}
	state, err := Normalize(Merge(v))
	if err != nil {
		return nil, err
	}
	branches := Branches(state)
	probs := probabilities(branches)
	cumulative := floats.CumSum(make([]float64, len(probs)), probs)

	r := e.Random.Next() * cumulative[len(cumulative)-1]
	chosen := len(branches) - 1
	for i, c := range cumulative {
		if r < c {
			chosen = i
			break
		}
	}

	outcome := branches[chosen]
	e.Log.Debug().
		Str("outcome", outcome.Value.Inspect()).
		Float64("probability", probs[chosen]).
		Int("branches", len(branches)).
		Msg("measured")
	return outcome.Value, nil
}

// Distribution pairs each distinct outcome of v with its probability.
func Distribution(v Value) ([]Branch, []float64, error) {
	state, err := Normalize(Merge(Lift(v)))
	if err != nil {
		return nil, nil, err
	}
	branches := Branches(state)
	return branches, probabilities(branches), nil
}
