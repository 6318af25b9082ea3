package diagnostics

import (
	"fmt"

	"github.com/funvibe/funqy/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal character / unterminated string
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // malformed pattern
	ErrP004 ErrorCode = "P004" // malformed amplitude annotation
	ErrP005 ErrorCode = "P005" // malformed declaration
	ErrP006 ErrorCode = "P006" // recursion depth limit exceeded
	ErrR001 ErrorCode = "R001" // runtime error
	ErrM001 ErrorCode = "M001" // module loading error
)

// DiagnosticError is a positioned, coded error reported at the front-end boundary.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
	// Err is the underlying runtime error, if any.
	Err error
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Wrap turns a runtime error into a diagnostic while keeping it reachable via errors.As.
func Wrap(code ErrorCode, tok token.Token, err error) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: err.Error(), Err: err}
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.File != "" {
		loc = e.File + ":"
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s%d:%d: error [%s]: %s", loc, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	if loc != "" {
		return fmt.Sprintf("%s error [%s]: %s", loc, e.Code, e.Message)
	}
	return fmt.Sprintf("error [%s]: %s", e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }
