package ast

import (
	"github.com/funvibe/funqy/internal/token"
)

// Identifier is a variable reference (x) or a constructor reference (T).
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IsConstructor reports whether the identifier names a data constructor.
func (i *Identifier) IsConstructor() bool {
	return i.Token.Type == token.IDENT_UPPER || (i.Value != "" && i.Value[0] >= 'A' && i.Value[0] <= 'Z')
}

// StringLiteral only appears as an import path.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// TupleLiteral is (a, b, ...). The empty tuple () is the unit value.
type TupleLiteral struct {
	Token    token.Token // '('
	Elements []Expression
}

func (tl *TupleLiteral) Accept(v Visitor)      { v.VisitTupleLiteral(tl) }
func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// FunctionLiteral represents an anonymous function (lambda).
// \(a, b) -> (b, a)
type FunctionLiteral struct {
	Token     token.Token // The '\' token
	Parameter Pattern
	Body      Expression
}

func (fl *FunctionLiteral) Accept(v Visitor)      { v.VisitFunctionLiteral(fl) }
func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// CaseFunction is a function defined as a finite case table.
// fn { F => T, T => F }
type CaseFunction struct {
	Token token.Token // The 'fn' token
	Cases []*MatchCase
}

func (cf *CaseFunction) Accept(v Visitor)      { v.VisitCaseFunction(cf) }
func (cf *CaseFunction) expressionNode()       {}
func (cf *CaseFunction) TokenLiteral() string  { return cf.Token.Lexeme }
func (cf *CaseFunction) GetToken() token.Token { return cf.Token }

// CallExpression is f(x) or f(a, b); several arguments form one tuple argument.
type CallExpression struct {
	Token     token.Token // '('
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// Argument collapses the argument list into the single value passed to the callee.
func (ce *CallExpression) Argument() Expression {
	if len(ce.Arguments) == 1 {
		return ce.Arguments[0]
	}
	return &TupleLiteral{Token: ce.Token, Elements: ce.Arguments}
}

// MatchCase is one `pattern => body` arm.
type MatchCase struct {
	Token   token.Token // first token of the pattern
	Pattern Pattern
	Body    Expression
}

// ExtractExpression destructures every branch of a possibly superposed value.
// extract x { F => T, T => F }
type ExtractExpression struct {
	Token     token.Token // The 'extract' token
	Scrutinee Expression
	Cases     []*MatchCase
}

func (ee *ExtractExpression) Accept(v Visitor)      { v.VisitExtractExpression(ee) }
func (ee *ExtractExpression) expressionNode()       {}
func (ee *ExtractExpression) TokenLiteral() string  { return ee.Token.Lexeme }
func (ee *ExtractExpression) GetToken() token.Token { return ee.Token }

// IfExpression represents if c then a else b.
type IfExpression struct {
	Token       token.Token // if
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) Accept(v Visitor)      { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// SupExpression builds a superposition of its arguments.
type SupExpression struct {
	Token     token.Token // The 'sup' token
	Arguments []Expression
}

func (se *SupExpression) Accept(v Visitor)      { v.VisitSupExpression(se) }
func (se *SupExpression) expressionNode()       {}
func (se *SupExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SupExpression) GetToken() token.Token { return se.Token }

// PhaseFlipExpression negates the phase of every branch: phf(x)
type PhaseFlipExpression struct {
	Token token.Token // The 'phf' token
	Value Expression
}

func (pe *PhaseFlipExpression) Accept(v Visitor)      { v.VisitPhaseFlipExpression(pe) }
func (pe *PhaseFlipExpression) expressionNode()       {}
func (pe *PhaseFlipExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PhaseFlipExpression) GetToken() token.Token { return pe.Token }

// MeasureExpression collapses a value to one branch: measure(x)
type MeasureExpression struct {
	Token token.Token // The 'measure' token
	Value Expression
}

func (me *MeasureExpression) Accept(v Visitor)      { v.VisitMeasureExpression(me) }
func (me *MeasureExpression) expressionNode()       {}
func (me *MeasureExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MeasureExpression) GetToken() token.Token { return me.Token }

// InvertExpression derives the structural inverse of a case table: inv(f)
type InvertExpression struct {
	Token    token.Token // The 'inv' token
	Function Expression
}

func (ie *InvertExpression) Accept(v Visitor)      { v.VisitInvertExpression(ie) }
func (ie *InvertExpression) expressionNode()       {}
func (ie *InvertExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InvertExpression) GetToken() token.Token { return ie.Token }

// RepeatExpression spreads a value uniformly over Count copies: repeat(x, 3)
type RepeatExpression struct {
	Token token.Token // The 'repeat' token
	Value Expression
	Count int
}

func (re *RepeatExpression) Accept(v Visitor)      { v.VisitRepeatExpression(re) }
func (re *RepeatExpression) expressionNode()       {}
func (re *RepeatExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RepeatExpression) GetToken() token.Token { return re.Token }

// AmplitudeExpression scales every branch of Value: @[phase] x or @[phase, magnitude] x.
// Phase is expressed in units of pi.
type AmplitudeExpression struct {
	Token     token.Token // The '@' token
	Phase     float64
	Magnitude float64
	Value     Expression
}

func (ae *AmplitudeExpression) Accept(v Visitor)      { v.VisitAmplitudeExpression(ae) }
func (ae *AmplitudeExpression) expressionNode()       {}
func (ae *AmplitudeExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AmplitudeExpression) GetToken() token.Token { return ae.Token }

// BlockExpression is a nested scope: { let x = T; (x, x) }
type BlockExpression struct {
	Token      token.Token // '{'
	Statements []Statement
	Result     Expression
}

func (be *BlockExpression) Accept(v Visitor)      { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()       {}
func (be *BlockExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token { return be.Token }
