package parser

import (
	"errors"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/lexer"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/funvibe/funqy/internal/token"
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot exhaust the Go stack.
const MaxRecursionDepth = 1000

const (
	_ int = iota
	LOWEST
	PREFIX // @[...] x
	CALL   // f(x)
)

var precedences = map[token.TokenType]int{
	token.LPAREN: CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth int
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{
		tokens: filterNewlines(tokens),
		ctx:    ctx,
	}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT_LOWER: p.parseIdentifier,
		token.IDENT_UPPER: p.parseIdentifier,
		token.LPAREN:      p.parseGroupedExpression,
		token.LBRACE:      p.parseBlockExpression,
		token.BACKSLASH:   p.parseFunctionLiteral,
		token.FN:          p.parseCaseFunction,
		token.EXTRACT:     p.parseExtractExpression,
		token.IF:          p.parseIfExpression,
		token.SUP:         p.parseSupExpression,
		token.PHF:         p.parsePhaseFlipExpression,
		token.MEASURE:     p.parseMeasureExpression,
		token.INV:         p.parseInvertExpression,
		token.REPEAT:      p.parseRepeatExpression,
		token.AT:          p.parseAmplitudeExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.LPAREN: p.parseCallExpression,
	}

	p.curToken = p.at(0)
	p.peekToken = p.at(1)
	return p
}

// ParseSource lexes and parses a whole program outside of a pipeline.
func ParseSource(source, file string) (*ast.Program, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = file
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		errs := make([]error, 0, len(ctx.Errors))
		for _, e := range ctx.Errors {
			if e.File == "" {
				e.File = file
			}
			errs = append(errs, e)
		}
		return nil, errors.Join(errs...)
	}
	return ctx.AstRoot.(*ast.Program), nil
}

// filterNewlines drops newlines nested inside () or [] and collapses runs of newlines.
// Inside {} newlines stay significant because they separate statements and cases.
func filterNewlines(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	var stack []token.TokenType
	for _, tok := range tokens {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			stack = append(stack, tok.Type)
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case token.NEWLINE:
			if len(stack) > 0 && stack[len(stack)-1] != token.LBRACE {
				continue
			}
			if len(out) > 0 && out[len(out)-1].Type == token.NEWLINE {
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

func (p *Parser) at(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column}
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.at(p.pos)
	p.peekToken = p.at(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// skipNewlinesBeforePeek lets keywords such as `then` and `else` start a new line.
func (p *Parser) skipNewlinesBeforePeek(t token.TokenType) {
	for p.peekTokenIs(token.NEWLINE) && p.at(p.pos+2).Type == t {
		p.nextToken()
	}
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.ErrP001, p.peekToken, "expected next token to be %s, got %s instead", t, describe(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP002, tok, "unexpected %s", describe(tok))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	}
	if tok.Lexeme != "" {
		return "'" + tok.Lexeme + "'"
	}
	return string(tok.Type)
}

// skipToStatementBoundary advances past the rest of a broken statement.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}
