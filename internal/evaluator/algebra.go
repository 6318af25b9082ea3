package evaluator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/lexer"
	"github.com/funvibe/funqy/internal/prettyprinter"
	"github.com/funvibe/funqy/internal/token"
	"gonum.org/v1/gonum/floats"
)

// Branches flattens v into weighted branches. A plain value is one branch of
// amplitude 1; the null state has none.
func Branches(v Value) []Branch {
	switch v := v.(type) {
	case *Superposition:
		out := make([]Branch, len(v.Branches))
		copy(out, v.Branches)
		return out
	case *Null:
		return nil
	default:
		return []Branch{{Value: v, Amp: One}}
	}
}

// Lift wraps any value as a superposition.
func Lift(v Value) Value {
	return newState(Branches(v))
}

// IsSuperposed reports whether v carries more than a single unit branch.
func IsSuperposed(v Value) bool {
	switch v := v.(type) {
	case *Superposition:
		return !(len(v.Branches) == 1 && v.Branches[0].Amp.IsOne())
	case *Null:
		return true
	}
	return false
}

// Pure returns the underlying value when v is a plain value or a single unit branch.
func Pure(v Value) (Value, bool) {
	switch s := v.(type) {
	case *Superposition:
		if len(s.Branches) == 1 && s.Branches[0].Amp.IsOne() {
			return s.Branches[0].Value, true
		}
		return nil, false
	case *Null:
		return nil, false
	}
	return v, true
}

// TensorCount is the number of branches TensorN would produce.
func TensorCount(components []Value) int {
	n := 1
	for _, c := range components {
		n *= len(Branches(c))
	}
	return n
}

// TensorN combines components into tuples over the Cartesian product of their
// branches, multiplying amplitudes. Without superposed components it builds a
// plain tuple.
func TensorN(components []Value) Value {
	superposed := false
	for _, c := range components {
		switch c.(type) {
		case *Superposition, *Null:
			superposed = true
		}
	}
	if !superposed {
		elems := make([]Value, len(components))
		copy(elems, components)
		return &Tuple{Elements: elems}
	}

	acc := []Branch{{Value: &Tuple{}, Amp: One}}
	for _, c := range components {
		cb := Branches(c)
		next := make([]Branch, 0, len(acc)*len(cb))
		for _, a := range acc {
			prefix := a.Value.(*Tuple).Elements
			for _, b := range cb {
				elems := make([]Value, len(prefix)+1)
				copy(elems, prefix)
				elems[len(prefix)] = b.Value
				next = append(next, Branch{Value: &Tuple{Elements: elems}, Amp: a.Amp * b.Amp})
			}
		}
		acc = next
	}
	return newState(acc)
}

// Tensor is the pairwise tensor product, the two-operand form of TensorN.
// The evaluator always goes through TensorN; Tensor is kept for callers
// that combine exactly two values.
func Tensor(a, b Value) Value {
	return TensorN([]Value{a, b})
}

// Merge coalesces structurally equal branches by summing their amplitudes and
// drops branches whose merged magnitude falls below Epsilon. Surviving branches
// keep first-occurrence order. When everything cancels the result is NullState.
func Merge(v Value) Value {
	s, ok := v.(*Superposition)
	if !ok {
		return v
	}
	index := make(map[string]int, len(s.Branches))
	merged := make([]Branch, 0, len(s.Branches))
	for _, b := range s.Branches {
		k := keyOf(b.Value)
		if i, seen := index[k]; seen {
			merged[i].Amp += b.Amp
			continue
		}
		index[k] = len(merged)
		merged = append(merged, b)
	}
	out := merged[:0]
	for _, b := range merged {
		if !b.Amp.IsZero() {
			out = append(out, b)
		}
	}
	return newState(out)
}

// Normalize rescales amplitudes so that probabilities sum to 1.
func Normalize(v Value) (Value, error) {
	switch s := v.(type) {
	case *Null:
		return nil, newError(DegenerateState, "cannot normalize the empty superposition")
	case *Superposition:
		total := floats.Sum(probabilities(s.Branches))
		if total == 0 {
			return nil, newError(DegenerateState, "cannot normalize a superposition with zero total probability")
		}
		return Scale(s, Amplitude(complex(1/math.Sqrt(total), 0))), nil
	}
	return v, nil
}

// Scale multiplies every amplitude by a. A plain value becomes a one-branch superposition.
func Scale(v Value, a Amplitude) Value {
	branches := Branches(v)
	for i := range branches {
		branches[i].Amp *= a
	}
	return newState(branches)
}

// PhaseFlip multiplies every amplitude by -1.
func PhaseFlip(v Value) Value {
	return Scale(v, -1)
}

// Union concatenates the branches of several values.
func Union(values ...Value) Value {
	var all []Branch
	for _, v := range values {
		all = append(all, Branches(v)...)
	}
	return newState(all)
}

// Equal compares two values as normalized superpositions, branch by branch.
// Global phase is significant: v and phf(v) are different.
func Equal(a, b Value) bool {
	ca, errA := Normalize(Merge(Lift(a)))
	cb, errB := Normalize(Merge(Lift(b)))
	if errA != nil || errB != nil {
		return errA != nil && errB != nil
	}
	ba, bb := Branches(ca), Branches(cb)
	if len(ba) != len(bb) {
		return false
	}
	amps := make(map[string]Amplitude, len(ba))
	for _, br := range ba {
		amps[keyOf(br.Value)] = br.Amp
	}
	for _, br := range bb {
		amp, ok := amps[keyOf(br.Value)]
		if !ok || !amp.ApproxEqual(br.Amp) {
			return false
		}
	}
	return true
}

// Probabilities returns the squared magnitude of each branch of v.
func Probabilities(v Value) []float64 {
	return probabilities(Branches(v))
}

func probabilities(branches []Branch) []float64 {
	ps := make([]float64, len(branches))
	for i, b := range branches {
		ps[i] = b.Amp.Probability()
	}
	return ps
}

// keyOf is the canonical structural key used to coalesce branches.
func keyOf(v Value) string {
	switch v := v.(type) {
	case *Atom:
		if v.Data == nil {
			return v.Tag()
		}
		return v.Data.Name + "." + v.Tag()
	case *Tuple:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = keyOf(el)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case *Closure:
		return closureKey(v)
	case *Null:
		return "{}"
	case *Superposition:
		parts := make([]string, len(v.Branches))
		for i, b := range v.Branches {
			parts[i] = keyOf(b.Value) + ":" + b.Amp.String()
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ",") + "}"
	}
	return fmt.Sprintf("%T", v)
}

// closureKey identifies a case table by its source and by what each name it
// mentions resolves to in the defining environment. Other lambdas are only
// equal to themselves.
func closureKey(c *Closure) string {
	cases, ok := c.Table()
	if !ok {
		return fmt.Sprintf("fn@%p", c)
	}
	src := prettyprinter.Inline(&ast.CaseFunction{Cases: cases})
	var b strings.Builder
	b.WriteString("fn" + src)
	seen := map[string]bool{}
	for _, tok := range lexer.New(src).Tokenize() {
		if tok.Type != token.IDENT_LOWER && tok.Type != token.IDENT_UPPER {
			continue
		}
		name := tok.Lexeme
		if seen[name] {
			continue
		}
		seen[name] = true
		if name == c.Name {
			b.WriteString("|" + name + "=self")
		} else if val, bound := c.Env.Get(name); bound {
			b.WriteString("|" + name + "=" + keyOf(val))
		}
	}
	return b.String()
}

// shapeOf describes the structural shape of a non-superposed value: atoms by
// data type, tuples by arity and element shapes.
func shapeOf(v Value) string {
	switch v := v.(type) {
	case *Atom:
		if v.Data == nil {
			return "atom"
		}
		return v.Data.Name
	case *Tuple:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = shapeOf(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *Closure:
		return "function"
	}
	return string(v.Type())
}
