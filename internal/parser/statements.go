package parser

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/token"
)

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			p.skipToStatementBoundary()
			p.skipNewlines()
			continue
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
		if !p.endOfStatement() {
			p.addError(diagnostics.ErrP001, p.curToken, "expected end of statement, got %s", describe(p.curToken))
			p.skipToStatementBoundary()
		}
		p.skipNewlines()
	}
	return program
}

func (p *Parser) endOfStatement() bool {
	return p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) || p.curTokenIs(token.EOF)
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DATA:
		return p.parseDataDeclaration()
	case token.LET:
		return p.parseLetStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// data Bool = F | T
func (p *Parser) parseDataDeclaration() ast.Statement {
	stmt := &ast.DataDeclaration{Token: p.curToken}
	if !p.peekTokenIs(token.IDENT_UPPER) {
		p.addError(diagnostics.ErrP005, p.peekToken, "data type name must start with an upper-case letter, got %s", describe(p.peekToken))
		return nil
	}
	p.nextToken()
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	for {
		if !p.peekTokenIs(token.IDENT_UPPER) {
			p.addError(diagnostics.ErrP005, p.peekToken, "data variant must start with an upper-case letter, got %s", describe(p.peekToken))
			return nil
		}
		p.nextToken()
		variant := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		for _, existing := range stmt.Variants {
			if existing.Value == variant.Value {
				p.addError(diagnostics.ErrP005, p.curToken, "duplicate variant %s in data %s", variant.Value, stmt.Name.Value)
				return nil
			}
		}
		stmt.Variants = append(stmt.Variants, variant)
		if !p.peekTokenIs(token.PIPE) {
			break
		}
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}
	p.nextToken()
	stmt.Pattern = p.parsePattern()
	if stmt.Pattern == nil {
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseAssertStatement() ast.Statement {
	stmt := &ast.AssertStatement{Token: p.curToken}
	p.nextToken()
	stmt.Expected = p.parseExpression(LOWEST)
	if stmt.Expected == nil {
		return nil
	}
	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	stmt.Actual = p.parseExpression(LOWEST)
	if stmt.Actual == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path, _ := p.curToken.Literal.(string)
	stmt.Path = &ast.StringLiteral{Token: p.curToken, Value: path}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseBlockExpression parses { statements; result }. The last statement must be an expression.
func (p *Parser) parseBlockExpression() ast.Expression {
	block := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()
	p.skipNewlines()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP001, p.curToken, "unterminated block, expected '}'")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
		if p.curTokenIs(token.RBRACE) {
			break
		}
		if !p.endOfStatement() {
			p.addError(diagnostics.ErrP001, p.curToken, "expected end of statement, got %s", describe(p.curToken))
			return nil
		}
		p.skipNewlines()
	}

	if len(block.Statements) == 0 {
		p.addError(diagnostics.ErrP001, block.Token, "empty block")
		return nil
	}
	last, ok := block.Statements[len(block.Statements)-1].(*ast.ExpressionStatement)
	if !ok {
		p.addError(diagnostics.ErrP001, block.Token, "block must end with an expression")
		return nil
	}
	block.Statements = block.Statements[:len(block.Statements)-1]
	block.Result = last.Expression
	return block
}
