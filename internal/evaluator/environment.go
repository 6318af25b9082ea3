package evaluator

import (
	"sort"

	"github.com/funvibe/funqy/internal/ast"
)

// Environment is an immutable chain of scopes. Extending returns a new child;
// the parent is never modified, so closures can share it freely.
type Environment struct {
	store map[string]Value
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: map[string]Value{}}
}

// Extend creates a child scope holding the given bindings.
func (e *Environment) Extend(bindings map[string]Value) *Environment {
	store := make(map[string]Value, len(bindings))
	for k, v := range bindings {
		store[k] = v
	}
	return &Environment{store: store, outer: e}
}

// With is Extend for a single binding.
func (e *Environment) With(name string, val Value) *Environment {
	return &Environment{store: map[string]Value{name: val}, outer: e}
}

func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if val, ok := env.store[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Lookup resolves the innermost binding of name.
func (e *Environment) Lookup(name string) (Value, error) {
	if val, ok := e.Get(name); ok {
		return val, nil
	}
	return nil, newError(UnboundIdentifier, "identifier not found: %s", name)
}

// Bindings flattens the visible scope; inner bindings shadow outer ones.
func (e *Environment) Bindings() map[string]Value {
	var chain []*Environment
	for env := e; env != nil; env = env.outer {
		chain = append(chain, env)
	}
	out := map[string]Value{}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].store {
			out[k] = v
		}
	}
	return out
}

// Names lists visible names in sorted order.
func (e *Environment) Names() []string {
	bindings := e.Bindings()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind matches value against pattern and returns parent extended with the
// resulting bindings. Refutable patterns require a non-superposed value;
// superposed values are destructured with extract instead.
func Bind(pattern ast.Pattern, value Value, parent *Environment) (*Environment, error) {
	if ast.IsIrrefutable(pattern) {
		if id, ok := pattern.(*ast.IdentifierPattern); ok {
			return parent.With(id.Value, value), nil
		}
		return parent, nil
	}
	m, err := compilePattern(pattern, parent)
	if err != nil {
		return nil, err
	}
	pure, ok := Pure(value)
	if !ok {
		return nil, newError(PatternMismatch, "cannot destructure superposed value %s; use extract", value.Inspect())
	}
	st := newMatchState(One)
	matched, err := m.match(pure, st)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, newError(PatternMismatch, "value %s does not match pattern", pure.Inspect())
	}
	return parent.Extend(st.bindings), nil
}
