package evaluator

import (
	"strings"
)

// Branch is one weighted alternative of a superposition.
type Branch struct {
	Value Value
	Amp   Amplitude
}

// Superposition is a finite weighted collection of non-superposed values.
// Branch order is first-occurrence order and is kept stable across merges.
type Superposition struct {
	Branches []Branch
}

func (s *Superposition) Type() ValueType { return SUPERPOSITION_OBJ }
func (s *Superposition) value()          {}

// Inspect prints a single unit branch as the bare value, otherwise {v: amp, ...}.
func (s *Superposition) Inspect() string {
	if len(s.Branches) == 0 {
		return "{}"
	}
	if len(s.Branches) == 1 && s.Branches[0].Amp.IsOne() {
		return s.Branches[0].Value.Inspect()
	}
	parts := make([]string, len(s.Branches))
	for i, b := range s.Branches {
		parts[i] = b.Value.Inspect() + ": " + b.Amp.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// newState wraps branches, collapsing an empty list to NullState.
func newState(branches []Branch) Value {
	if len(branches) == 0 {
		return NullState
	}
	return &Superposition{Branches: branches}
}
