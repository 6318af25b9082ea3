package evaluator

import (
	"fmt"
	"strings"
)

// DataType is a declared type with nullary variants, e.g. data Bool = F | T.
type DataType struct {
	Name     string
	Variants []string
}

// Same reports structural identity. Re-declaring a type with the same name and
// variants (for instance through two imports) yields interchangeable atoms.
func (d *DataType) Same(other *DataType) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil || d.Name != other.Name || len(d.Variants) != len(other.Variants) {
		return false
	}
	for i := range d.Variants {
		if d.Variants[i] != other.Variants[i] {
			return false
		}
	}
	return true
}

// Atom is an instance of one variant of a DataType.
type Atom struct {
	Data  *DataType
	Index int
}

func (a *Atom) Type() ValueType { return ATOM_OBJ }
func (a *Atom) Inspect() string { return a.Tag() }
func (a *Atom) value()          {}

func (a *Atom) Tag() string {
	if a.Data == nil || a.Index < 0 || a.Index >= len(a.Data.Variants) {
		return fmt.Sprintf("<atom %d>", a.Index)
	}
	return a.Data.Variants[a.Index]
}

// Tuple is a fixed-arity composite. Its elements are never superposed: tuple
// construction over superposed components goes through TensorN instead.
type Tuple struct {
	Elements []Value
}

func (t *Tuple) Type() ValueType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) value() {}

// Unit is the empty tuple ().
var Unit = &Tuple{}

// Null is the empty superposition: every branch cancelled.
type Null struct{}

func (n *Null) Type() ValueType { return NULL_OBJ }
func (n *Null) Inspect() string { return "{}" }
func (n *Null) value()          {}

// NullState is the shared null value.
var NullState = &Null{}
