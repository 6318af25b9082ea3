package ast

import (
	"github.com/funvibe/funqy/internal/token"
)

// Pattern is a Node that appears on the left of `=>`, in `let`, and as a lambda parameter.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// WildcardPattern matches anything and binds nothing: _
type WildcardPattern struct {
	Token token.Token
}

func (p *WildcardPattern) Accept(v Visitor)      { v.VisitWildcardPattern(p) }
func (p *WildcardPattern) patternNode()          {}
func (p *WildcardPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token { return p.Token }

// IdentifierPattern binds the matched value to a variable.
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (p *IdentifierPattern) Accept(v Visitor)      { v.VisitIdentifierPattern(p) }
func (p *IdentifierPattern) patternNode()          {}
func (p *IdentifierPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *IdentifierPattern) GetToken() token.Token { return p.Token }

// ConstructorPattern matches a literal atom by constructor name.
type ConstructorPattern struct {
	Token token.Token // Constructor name
	Name  string
}

func (p *ConstructorPattern) Accept(v Visitor)      { v.VisitConstructorPattern(p) }
func (p *ConstructorPattern) patternNode()          {}
func (p *ConstructorPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ConstructorPattern) GetToken() token.Token { return p.Token }

// TuplePattern matches a tuple of the same arity.
type TuplePattern struct {
	Token    token.Token // '('
	Elements []Pattern
}

func (p *TuplePattern) Accept(v Visitor)      { v.VisitTuplePattern(p) }
func (p *TuplePattern) patternNode()          {}
func (p *TuplePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *TuplePattern) GetToken() token.Token { return p.Token }

// AlternativePattern tries each alternative left to right: F | T
type AlternativePattern struct {
	Token        token.Token // first alternative token
	Alternatives []Pattern
}

func (p *AlternativePattern) Accept(v Visitor)      { v.VisitAlternativePattern(p) }
func (p *AlternativePattern) patternNode()          {}
func (p *AlternativePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *AlternativePattern) GetToken() token.Token { return p.Token }

// PhasePattern matches only branches whose amplitude phase is flipped: ~T
type PhasePattern struct {
	Token   token.Token // The '~' token
	Pattern Pattern
}

func (p *PhasePattern) Accept(v Visitor)      { v.VisitPhasePattern(p) }
func (p *PhasePattern) patternNode()          {}
func (p *PhasePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *PhasePattern) GetToken() token.Token { return p.Token }

// IsIrrefutable reports whether a pattern matches every value without inspecting it.
func IsIrrefutable(p Pattern) bool {
	switch p.(type) {
	case *WildcardPattern, *IdentifierPattern:
		return true
	}
	return false
}
