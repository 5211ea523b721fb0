package parser

import (
	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.LBRACE):
		return p.parseBlockStatement()
	case p.curIs(token.IF):
		return p.parseIfStatement()
	case p.curIs(token.WHILE):
		return p.parseWhileStatement()
	case p.curIs(token.DO):
		return p.parseDoWhileStatement()
	case p.curIs(token.IDENT) && p.curToken.Literal == "System":
		return p.parsePrintStatement()
	case p.curIs(token.IDENT):
		return p.parseAssignOrArrayAssign()
	default:
		p.addError("expected a statement, got %s (%q)", p.curToken.Type, p.curToken.Literal)
		p.nextToken()
		return &ast.BlockStatement{Token: p.curToken}
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	bs := &ast.BlockStatement{Token: p.curToken}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		bs.Statements = append(bs.Statements, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return bs
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	is := &ast.IfStatement{Token: p.curToken}
	p.expect(token.IF)
	p.expect(token.LPAREN)
	is.Cond = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	is.Then = p.parseStatement()
	if p.curIs(token.ELSE) {
		p.nextToken()
		is.Else = p.parseStatement()
	}
	return is
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	ws := &ast.WhileStatement{Token: p.curToken}
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	ws.Cond = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	ws.Body = p.parseStatement()
	return ws
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	ds := &ast.DoWhileStatement{Token: p.curToken}
	p.expect(token.DO)
	ds.Body = p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	ds.Cond = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return ds
}

func (p *Parser) parsePrintStatement() *ast.PrintStatement {
	ps := &ast.PrintStatement{Token: p.curToken}
	p.nextToken() // `System`
	p.expect(token.DOT)
	if p.curToken.Literal != "out" {
		p.addError("expected 'out', got %q", p.curToken.Literal)
	}
	p.nextToken()
	p.expect(token.DOT)
	if p.curToken.Literal != "println" {
		p.addError("expected 'println', got %q", p.curToken.Literal)
	}
	p.nextToken()
	p.expect(token.LPAREN)
	ps.Value = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return ps
}

func (p *Parser) parseAssignOrArrayAssign() ast.Statement {
	tok := p.curToken
	name := p.parseIdentifier()

	if p.curIs(token.LBRACKET) {
		p.nextToken()
		index := p.parseExpression(LOWEST)
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		value := p.parseExpression(LOWEST)
		p.expect(token.SEMI)
		return &ast.ArrayAssignStatement{Token: tok, Name: name, Index: index, Value: value}
	}

	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	p.expect(token.SEMI)
	return &ast.AssignStatement{Token: tok, Name: name, Value: value}
}
