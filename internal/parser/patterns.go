package parser

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/token"
)

// parsePattern parses an alternation: p | q | ...
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parsePhasePattern()
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.PIPE) {
		return first
	}
	alt := &ast.AlternativePattern{Token: first.GetToken(), Alternatives: []ast.Pattern{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		next := p.parsePhasePattern()
		if next == nil {
			return nil
		}
		alt.Alternatives = append(alt.Alternatives, next)
	}
	return alt
}

func (p *Parser) parsePhasePattern() ast.Pattern {
	if p.curTokenIs(token.TILDE) {
		pat := &ast.PhasePattern{Token: p.curToken}
		p.nextToken()
		pat.Pattern = p.parsePhasePattern()
		if pat.Pattern == nil {
			return nil
		}
		return pat
	}
	return p.parseAtomicPattern()
}

func (p *Parser) parseAtomicPattern() ast.Pattern {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.curToken}
	case token.IDENT_LOWER:
		return &ast.IdentifierPattern{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.IDENT_UPPER:
		return &ast.ConstructorPattern{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.LPAREN:
		return p.parseTuplePattern()
	default:
		p.addError(diagnostics.ErrP003, p.curToken, "expected a pattern, got %s", describe(p.curToken))
		return nil
	}
}

// parseTuplePattern handles (), (p) as grouping, and (p, q, ...).
func (p *Parser) parseTuplePattern() ast.Pattern {
	tok := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TuplePattern{Token: tok}
	}
	p.nextToken()
	first := p.parsePattern()
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}
	tuple := &ast.TuplePattern{Token: tok, Elements: []ast.Pattern{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parsePattern()
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
