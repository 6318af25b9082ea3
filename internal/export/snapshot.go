// Package export renders evaluated values for files and terminals.
package export

import (
	"github.com/funvibe/funqy/internal/evaluator"
)

// BranchSnapshot is one weighted outcome of a value.
type BranchSnapshot struct {
	Value       string  `yaml:"value" msgpack:"value"`
	Real        float64 `yaml:"real" msgpack:"real"`
	Imag        float64 `yaml:"imag" msgpack:"imag"`
	Magnitude   float64 `yaml:"magnitude" msgpack:"magnitude"`
	Phase       float64 `yaml:"phase" msgpack:"phase"`
	Probability float64 `yaml:"probability" msgpack:"probability"`
}

// Snapshot is a serializable view of a value: its printed form plus, for
// superpositions, every branch with amplitude and probability.
type Snapshot struct {
	Kind     string           `yaml:"kind" msgpack:"kind"`
	Repr     string           `yaml:"repr" msgpack:"repr"`
	Branches []BranchSnapshot `yaml:"branches,omitempty" msgpack:"branches,omitempty"`
}

// Capture builds a snapshot of v, normalized so that branch probabilities
// sum to 1. Plain values are reported as a single branch of amplitude 1; the
// null state has no branches.
func Capture(v evaluator.Value) Snapshot {
	s := Snapshot{Kind: string(v.Type()), Repr: v.Inspect()}
	branches, probs, err := evaluator.Distribution(v)
	if err != nil {
		return s
	}
	if state, err := evaluator.Normalize(evaluator.Merge(v)); err == nil {
		s.Repr = state.Inspect()
	}
	for i, b := range branches {
		s.Branches = append(s.Branches, BranchSnapshot{
			Value:       b.Value.Inspect(),
			Real:        real(b.Amp),
			Imag:        imag(b.Amp),
			Magnitude:   b.Amp.Magnitude(),
			Phase:       b.Amp.Phase(),
			Probability: probs[i],
		})
	}
	return s
}
