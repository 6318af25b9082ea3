package evaluator

type ValueType string

const (
	ATOM_OBJ          = "ATOM"
	TUPLE_OBJ         = "TUPLE"
	SUPERPOSITION_OBJ = "SUPERPOSITION"
	CLOSURE_OBJ       = "CLOSURE"
	NULL_OBJ          = "NULL"
)

// Value is the closed set of runtime values: *Atom, *Tuple, *Superposition, *Closure and *Null.
// Values are immutable; every operation builds a new Value.
type Value interface {
	Type() ValueType
	Inspect() string
	value()
}
