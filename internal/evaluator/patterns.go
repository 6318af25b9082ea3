package evaluator

import (
	"github.com/funvibe/funqy/internal/ast"
)

// matcher is a compiled pattern. Constructor names are resolved to atoms at
// compile time so later shadowing cannot change what a case matches.
type matcher interface {
	match(v Value, st *matchState) (bool, error)
	describe() string
}

// matchState carries bindings and the branch amplitude through a match;
// phase patterns consume the flip they test for.
type matchState struct {
	bindings map[string]Value
	amp      Amplitude
}

func newMatchState(amp Amplitude) *matchState {
	return &matchState{bindings: map[string]Value{}, amp: amp}
}

func (st *matchState) clone() *matchState {
	b := make(map[string]Value, len(st.bindings))
	for k, v := range st.bindings {
		b[k] = v
	}
	return &matchState{bindings: b, amp: st.amp}
}

type wildcardMatcher struct{}

func (wildcardMatcher) match(Value, *matchState) (bool, error) { return true, nil }
func (wildcardMatcher) describe() string                       { return "_" }

type bindMatcher struct{ name string }

func (m bindMatcher) match(v Value, st *matchState) (bool, error) {
	st.bindings[m.name] = v
	return true, nil
}
func (m bindMatcher) describe() string { return m.name }

type atomMatcher struct{ atom *Atom }

func (m atomMatcher) match(v Value, _ *matchState) (bool, error) {
	a, ok := v.(*Atom)
	if !ok {
		return false, newError(PatternMismatch, "pattern %s expects %s, got %s", m.describe(), m.atom.Data.Name, v.Inspect())
	}
	if !a.Data.Same(m.atom.Data) {
		return false, newError(PatternMismatch, "pattern %s expects %s, got %s of type %s",
			m.describe(), m.atom.Data.Name, a.Inspect(), a.Data.Name)
	}
	return a.Index == m.atom.Index, nil
}
func (m atomMatcher) describe() string { return m.atom.Tag() }

type tupleMatcher struct{ elems []matcher }

func (m tupleMatcher) match(v Value, st *matchState) (bool, error) {
	t, ok := v.(*Tuple)
	if !ok || len(t.Elements) != len(m.elems) {
		return false, newError(PatternMismatch, "pattern %s does not fit value %s", m.describe(), v.Inspect())
	}
	for i, em := range m.elems {
		ok, err := em.match(t.Elements[i], st)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (m tupleMatcher) describe() string {
	s := "("
	for i, em := range m.elems {
		if i > 0 {
			s += ", "
		}
		s += em.describe()
	}
	return s + ")"
}

type altMatcher struct{ alts []matcher }

func (m altMatcher) match(v Value, st *matchState) (bool, error) {
	for _, alt := range m.alts {
		scratch := st.clone()
		ok, err := alt.match(v, scratch)
		if err != nil {
			return false, err
		}
		if ok {
			*st = *scratch
			return true, nil
		}
	}
	return false, nil
}

func (m altMatcher) describe() string {
	s := ""
	for i, alt := range m.alts {
		if i > 0 {
			s += " | "
		}
		s += alt.describe()
	}
	return s
}

// phaseMatcher accepts only phase-flipped branches and un-flips the amplitude.
type phaseMatcher struct{ inner matcher }

func (m phaseMatcher) match(v Value, st *matchState) (bool, error) {
	if !st.amp.IsFlipped() {
		return false, nil
	}
	scratch := st.clone()
	scratch.amp = scratch.amp.Flip()
	ok, err := m.inner.match(v, scratch)
	if err != nil || !ok {
		return false, err
	}
	*st = *scratch
	return true, nil
}
func (m phaseMatcher) describe() string { return "~" + m.inner.describe() }

// compilePattern resolves a pattern against env into a matcher.
func compilePattern(p ast.Pattern, env *Environment) (matcher, error) {
	seen := map[string]bool{}
	m, err := compileWith(p, env, seen)
	if err != nil {
		return nil, withPosition(err, p.GetToken())
	}
	return m, nil
}

func compileWith(p ast.Pattern, env *Environment, seen map[string]bool) (matcher, error) {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		return wildcardMatcher{}, nil
	case *ast.IdentifierPattern:
		if seen[p.Value] {
			return nil, newError(PatternMismatch, "variable %s is bound twice in one pattern", p.Value)
		}
		seen[p.Value] = true
		return bindMatcher{name: p.Value}, nil
	case *ast.ConstructorPattern:
		val, err := env.Lookup(p.Name)
		if err != nil {
			return nil, err
		}
		atom, ok := val.(*Atom)
		if !ok {
			return nil, newError(PatternMismatch, "%s is not a constructor", p.Name)
		}
		return atomMatcher{atom: atom}, nil
	case *ast.TuplePattern:
		elems := make([]matcher, len(p.Elements))
		for i, el := range p.Elements {
			m, err := compileWith(el, env, seen)
			if err != nil {
				return nil, err
			}
			elems[i] = m
		}
		return tupleMatcher{elems: elems}, nil
	case *ast.AlternativePattern:
		alts := make([]matcher, len(p.Alternatives))
		bound := map[string]bool{}
		for i, alt := range p.Alternatives {
			// each alternative binds independently
			branchSeen := copySeen(seen)
			m, err := compileWith(alt, env, branchSeen)
			if err != nil {
				return nil, err
			}
			alts[i] = m
			for k := range branchSeen {
				bound[k] = true
			}
		}
		for k := range bound {
			seen[k] = true
		}
		return altMatcher{alts: alts}, nil
	case *ast.PhasePattern:
		inner, err := compileWith(p.Pattern, env, seen)
		if err != nil {
			return nil, err
		}
		return phaseMatcher{inner: inner}, nil
	}
	return nil, newError(Internal, "unknown pattern %T", p)
}

func copySeen(seen map[string]bool) map[string]bool {
	out := make(map[string]bool, len(seen))
	for k, v := range seen {
		out[k] = v
	}
	return out
}
