package parser

import (
	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/token"
)

// parseExpression implements precedence climbing: parse a prefix/primary
// form, then keep absorbing infix binary operators and postfix forms
// (`.length`, `[index]`, `.method(args)`) while they bind at least as
// tightly as the caller's minimum precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()

	for !p.curIs(token.SEMI) && precedence < p.peekLevelForCurrentInfix() {
		left = p.parseInfixOrPostfix(left)
	}
	return left
}

// peekLevelForCurrentInfix reports the precedence of the operator or
// postfix form currently under the cursor (not the peek token) — binary
// operators and postfix forms are both left-associative continuations of
// the expression already parsed into `left`.
func (p *Parser) peekLevelForCurrentInfix() int {
	switch p.curToken.Type {
	case token.AND:
		return LOGICAL_AND
	case token.LT:
		return COMPARISON
	case token.PLUS, token.MINUS:
		return SUM
	case token.STAR:
		return PRODUCT
	case token.DOT, token.LBRACKET:
		return PRODUCT + 1 // postfix binds tighter than any binary operator
	default:
		return LOWEST
	}
}

func (p *Parser) parseInfixOrPostfix(left ast.Expression) ast.Expression {
	switch p.curToken.Type {
	case token.AND, token.LT, token.PLUS, token.MINUS, token.STAR:
		return p.parseBinaryExpression(left)
	case token.DOT:
		return p.parseDotExpression(left)
	case token.LBRACKET:
		return p.parseIndexExpression(left)
	default:
		return left
	}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.peekLevelForCurrentInfix()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.expect(token.LBRACKET)
	index := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.IndexExpression{Token: tok, Array: left, Index: index}
}

func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.expect(token.DOT)
	if p.curToken.Literal == "length" {
		p.nextToken()
		return &ast.LengthExpression{Token: tok, Array: left}
	}

	method := p.parseIdentifier()
	p.expect(token.LPAREN)
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		for p.curIs(token.COMMA) {
			p.nextToken()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	p.expect(token.RPAREN)
	return &ast.MethodCallExpression{Token: tok, Receiver: left, Method: method, Args: args}
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.INT_LITERAL:
		return p.parseIntegerLiteral()
	case token.TRUE:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case token.FALSE:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case token.THIS:
		p.nextToken()
		return &ast.ThisExpression{Token: tok}
	case token.IDENT:
		return p.parseIdentifier()
	case token.NEW:
		return p.parseNewExpression()
	case token.BANG:
		p.nextToken()
		return &ast.NotExpression{Token: tok, Operand: p.parseExpression(PRODUCT)}
	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
		return &ast.ParenExpression{Token: tok, Inner: inner}
	default:
		p.addError("unexpected token %s (%q) in expression", tok.Type, tok.Literal)
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: 0}
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	var value int64
	for _, r := range tok.Literal {
		value = value*10 + int64(r-'0')
	}
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: value}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	p.expect(token.NEW)
	if p.curIs(token.INT) {
		p.nextToken()
		p.expect(token.LBRACKET)
		size := p.parseExpression(LOWEST)
		p.expect(token.RBRACKET)
		return &ast.NewArrayExpression{Token: tok, Size: size}
	}

	className := p.parseIdentifier()
	p.expect(token.LPAREN)
	p.expect(token.RPAREN)
	return &ast.NewObjectExpression{Token: tok, ClassName: className}
}
