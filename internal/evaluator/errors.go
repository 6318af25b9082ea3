package evaluator

import (
	"fmt"

	"github.com/funvibe/funqy/internal/token"
)

type ErrorKind int

const (
	Internal ErrorKind = iota
	UnboundIdentifier
	PatternMismatch
	NonExhaustiveMatch
	DegenerateState
	NotInvertible
	AssertionFailed
	ResourceExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundIdentifier:
		return "UnboundIdentifier"
	case PatternMismatch:
		return "PatternMismatch"
	case NonExhaustiveMatch:
		return "NonExhaustiveMatch"
	case DegenerateState:
		return "DegenerateState"
	case NotInvertible:
		return "NotInvertible"
	case AssertionFailed:
		return "AssertionFailed"
	case ResourceExhausted:
		return "ResourceExhausted"
	default:
		return "Internal"
	}
}

// RuntimeError is a failure raised while evaluating a program.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the sentinel of the same kind, so errors.Is(err, ErrPatternMismatch) works.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	return ok && t.Message == "" && t.Kind == e.Kind
}

var (
	ErrInternal           = &RuntimeError{Kind: Internal}
	ErrUnboundIdentifier  = &RuntimeError{Kind: UnboundIdentifier}
	ErrPatternMismatch    = &RuntimeError{Kind: PatternMismatch}
	ErrNonExhaustiveMatch = &RuntimeError{Kind: NonExhaustiveMatch}
	ErrDegenerateState    = &RuntimeError{Kind: DegenerateState}
	ErrNotInvertible      = &RuntimeError{Kind: NotInvertible}
	ErrAssertionFailed    = &RuntimeError{Kind: AssertionFailed}
	ErrResourceExhausted  = &RuntimeError{Kind: ResourceExhausted}
)

func newError(kind ErrorKind, format string, a ...interface{}) *RuntimeError {
	msg := format
	if len(a) > 0 {
		msg = fmt.Sprintf(format, a...)
	}
	return &RuntimeError{Kind: kind, Message: msg}
}

// AssertionError reports an `assert expected == actual` that did not hold.
type AssertionError struct {
	Expected Value
	Actual   Value
	Line     int
	Column   int
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("AssertionFailed at %d:%d: expected %s, got %s",
		e.Line, e.Column, e.Expected.Inspect(), e.Actual.Inspect())
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertionFailed
}

// withPosition stamps the token position onto errors that do not carry one yet.
func withPosition(err error, tok token.Token) error {
	switch e := err.(type) {
	case *RuntimeError:
		if e.Line == 0 && tok.Line > 0 {
			e.Line, e.Column = tok.Line, tok.Column
		}
	case *AssertionError:
		if e.Line == 0 && tok.Line > 0 {
			e.Line, e.Column = tok.Line, tok.Column
		}
	}
	return err
}
