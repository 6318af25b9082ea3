package parser

import (
	"math"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

// parseGroupedExpression handles (), (e) and (a, b, ...).
func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok}
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}
	tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, elem)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return tuple
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		list = append(list, elem)
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: function}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	call.Arguments = args
	return call
}

// \pattern -> body
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	p.nextToken()
	fn.Parameter = p.parsePattern()
	if fn.Parameter == nil {
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	fn.Body = p.parseExpression(LOWEST)
	if fn.Body == nil {
		return nil
	}
	return fn
}

// fn { p => e, ... }
func (p *Parser) parseCaseFunction() ast.Expression {
	fn := &ast.CaseFunction{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Cases = p.parseCases()
	if fn.Cases == nil {
		return nil
	}
	return fn
}

// extract e { p => e, ... }
func (p *Parser) parseExtractExpression() ast.Expression {
	expr := &ast.ExtractExpression{Token: p.curToken}
	p.nextToken()
	expr.Scrutinee = p.parseExpression(LOWEST)
	if expr.Scrutinee == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Cases = p.parseCases()
	if expr.Cases == nil {
		return nil
	}
	return expr
}

func isCaseSeparator(t token.TokenType) bool {
	return t == token.COMMA || t == token.NEWLINE || t == token.SEMICOLON
}

// parseCases reads `{ p => e <sep> ... }` with the current token on '{'.
// Cases are separated by commas, semicolons or newlines.
func (p *Parser) parseCases() []*ast.MatchCase {
	open := p.curToken
	p.nextToken()
	for isCaseSeparator(p.curToken.Type) {
		p.nextToken()
	}

	var cases []*ast.MatchCase
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP001, p.curToken, "unterminated case table, expected '}'")
			return nil
		}
		c := &ast.MatchCase{Token: p.curToken}
		c.Pattern = p.parsePattern()
		if c.Pattern == nil {
			return nil
		}
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		c.Body = p.parseExpression(LOWEST)
		if c.Body == nil {
			return nil
		}
		cases = append(cases, c)

		p.nextToken()
		if p.curTokenIs(token.RBRACE) {
			break
		}
		if !isCaseSeparator(p.curToken.Type) {
			p.addError(diagnostics.ErrP001, p.curToken, "expected ',' or newline between cases, got %s", describe(p.curToken))
			return nil
		}
		for isCaseSeparator(p.curToken.Type) {
			p.nextToken()
		}
	}

	if len(cases) == 0 {
		p.addError(diagnostics.ErrP001, open, "case table needs at least one case")
		return nil
	}
	return cases
}

// if c then a else b
func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}
	p.skipNewlinesBeforePeek(token.THEN)
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	expr.Consequence = p.parseExpression(LOWEST)
	if expr.Consequence == nil {
		return nil
	}
	p.skipNewlinesBeforePeek(token.ELSE)
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(LOWEST)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseSupExpression() ast.Expression {
	expr := &ast.SupExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	if len(args) == 0 {
		p.addError(diagnostics.ErrP001, expr.Token, "sup needs at least one argument")
		return nil
	}
	expr.Arguments = args
	return expr
}

// parseUnaryCall reads `(expr)` after a builtin keyword.
func (p *Parser) parseUnaryCall() ast.Expression {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return arg
}

func (p *Parser) parsePhaseFlipExpression() ast.Expression {
	expr := &ast.PhaseFlipExpression{Token: p.curToken}
	if expr.Value = p.parseUnaryCall(); expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseMeasureExpression() ast.Expression {
	expr := &ast.MeasureExpression{Token: p.curToken}
	if expr.Value = p.parseUnaryCall(); expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInvertExpression() ast.Expression {
	expr := &ast.InvertExpression{Token: p.curToken}
	if expr.Function = p.parseUnaryCall(); expr.Function == nil {
		return nil
	}
	return expr
}

// repeat(e, n)
func (p *Parser) parseRepeatExpression() ast.Expression {
	expr := &ast.RepeatExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	if expr.Value == nil {
		return nil
	}
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.NUMBER) {
		return nil
	}
	n, _ := p.curToken.Literal.(float64)
	if n < 1 || n != math.Trunc(n) {
		p.addError(diagnostics.ErrP001, p.curToken, "repeat count must be a positive integer, got %s", p.curToken.Lexeme)
		return nil
	}
	expr.Count = int(n)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// @[phase] e or @[phase, magnitude] e
func (p *Parser) parseAmplitudeExpression() ast.Expression {
	expr := &ast.AmplitudeExpression{Token: p.curToken, Magnitude: 1}
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()
	phase, ok := p.parseSignedNumber()
	if !ok {
		return nil
	}
	expr.Phase = phase
	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		mag, ok := p.parseSignedNumber()
		if !ok {
			return nil
		}
		if mag < 0 {
			p.addError(diagnostics.ErrP004, p.curToken, "amplitude magnitude must not be negative")
			return nil
		}
		expr.Magnitude = mag
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(PREFIX)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseSignedNumber() (float64, bool) {
	sign := 1.0
	if p.curTokenIs(token.MINUS) {
		sign = -1
		p.nextToken()
	}
	if !p.curTokenIs(token.NUMBER) {
		p.addError(diagnostics.ErrP004, p.curToken, "expected a number in amplitude annotation, got %s", describe(p.curToken))
		return 0, false
	}
	n, _ := p.curToken.Literal.(float64)
	return sign * n, true
}
