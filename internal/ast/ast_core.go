package ast

import (
	"github.com/funvibe/funqy/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// DataDeclaration introduces a data type with nullary variants.
// data Bool = F | T
type DataDeclaration struct {
	Token    token.Token // The 'data' token
	Name     *Identifier
	Variants []*Identifier
}

func (dd *DataDeclaration) Accept(v Visitor)      { v.VisitDataDeclaration(dd) }
func (dd *DataDeclaration) statementNode()        {}
func (dd *DataDeclaration) TokenLiteral() string  { return dd.Token.Lexeme }
func (dd *DataDeclaration) GetToken() token.Token { return dd.Token }

// LetStatement binds a pattern to the value of an expression.
// let (a, b) = pair
type LetStatement struct {
	Token   token.Token // The 'let' token
	Pattern Pattern
	Value   Expression
}

func (ls *LetStatement) Accept(v Visitor)      { v.VisitLetStatement(ls) }
func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// AssertStatement compares two values for semantic equality.
// assert had(had(F)) == F
type AssertStatement struct {
	Token    token.Token // The 'assert' token
	Expected Expression
	Actual   Expression
}

func (as *AssertStatement) Accept(v Visitor)      { v.VisitAssertStatement(as) }
func (as *AssertStatement) statementNode()        {}
func (as *AssertStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssertStatement) GetToken() token.Token { return as.Token }

// PrintStatement emits the printed representation of a value.
type PrintStatement struct {
	Token token.Token // The 'print' token
	Value Expression
}

func (ps *PrintStatement) Accept(v Visitor)      { v.VisitPrintStatement(ps) }
func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }

// ImportStatement represents an import declaration.
// import "std/gates"
type ImportStatement struct {
	Token token.Token // The 'import' token
	Path  *StringLiteral
}

func (is *ImportStatement) Accept(v Visitor)      { v.VisitImportStatement(is) }
func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)      { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
