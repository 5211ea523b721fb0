// Package parser implements a recursive-descent, precedence-climbing parser
// that turns a MiniJava token stream into the internal/ast parse tree. The
// specification treats this front end as an external collaborator; this
// package is the concrete realization that lets the rest of the pipeline
// have a real tree to walk.
package parser

import (
	"fmt"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/token"
)

// Operator precedence levels, lowest to highest, following §4/§6's grammar:
// && binds loosest, then <, then + -, then *, then unary/postfix forms.
const (
	_ int = iota
	LOWEST
	LOGICAL_AND // &&
	COMPARISON  // <
	SUM         // + -
	PRODUCT     // *
)

var precedences = map[token.Type]int{
	token.AND:   LOGICAL_AND,
	token.LT:    COMPARISON,
	token.PLUS:  SUM,
	token.MINUS: SUM,
	token.STAR:  PRODUCT,
}

// Parser is a single-pass recursive-descent parser with one token of
// lookahead, in the teacher's style.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*SyntaxError
}

// New creates a Parser over the given Lexer and primes the two-token
// lookahead window.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every syntax error collected while parsing.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.curToken.Pos,
	})
}

func (p *Parser) expect(t token.Type) token.Token {
	tok := p.curToken
	if p.curToken.Type != t {
		p.addError("expected %s, got %s (%q)", t, p.curToken.Type, p.curToken.Literal)
	}
	p.nextToken()
	return tok
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream, returning the root Program
// node. Syntax errors are accumulated in p.Errors(); a non-nil error is
// returned whenever at least one was recorded, alongside the partial tree.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	prog.MainClass = p.parseMainClass()

	for !p.curIs(token.EOF) {
		prog.Classes = append(prog.Classes, p.parseClassDecl())
	}

	if len(p.errors) > 0 {
		return prog, fmt.Errorf("%d syntax error(s), first: %s", len(p.errors), p.errors[0])
	}
	return prog, nil
}

func (p *Parser) parseMainClass() *ast.MainClass {
	mc := &ast.MainClass{Token: p.curToken}
	p.expect(token.CLASS)
	mc.Name = p.parseIdentifier()
	p.expect(token.LBRACE)
	p.expect(token.PUBLIC)
	p.expect(token.STATIC)
	p.expect(token.VOID)
	p.expect(token.MAIN)
	p.expect(token.LPAREN)
	p.expect(token.STRING_KW)
	p.expect(token.LBRACKET)
	p.expect(token.RBRACKET)
	mc.ArgName = p.curToken.Literal
	p.expect(token.IDENT)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	mc.Body = p.parseStatement()
	p.expect(token.RBRACE)
	p.expect(token.RBRACE)
	return mc
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	cd := &ast.ClassDecl{Token: p.curToken}
	p.expect(token.CLASS)
	cd.Name = p.parseIdentifier()
	if p.curIs(token.EXTENDS) {
		p.nextToken()
		cd.Superclass = p.parseIdentifier()
	}
	p.expect(token.LBRACE)

	for p.startsVarDecl() {
		cd.Fields = append(cd.Fields, p.parseVarDecl())
	}
	for p.curIs(token.PUBLIC) {
		cd.Methods = append(cd.Methods, p.parseMethodDecl())
	}

	p.expect(token.RBRACE)
	return cd
}

// startsVarDecl reports whether the token(s) at the cursor begin a
// `Type id` declaration, the one lookahead needed to tell a field/local
// declaration apart from a statement beginning with the same token
// (an identifier can start either a class-type declaration or an
// assignment statement; `int` can start either a scalar or array type).
func (p *Parser) startsVarDecl() bool {
	switch p.curToken.Type {
	case token.INT:
		return p.peekIs(token.IDENT) || p.peekIs(token.LBRACKET)
	case token.BOOLEAN, token.IDENT:
		return p.peekIs(token.IDENT)
	default:
		return false
	}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	vd := &ast.VarDecl{Token: p.curToken}
	vd.Type = p.parseType()
	vd.Name = p.parseIdentifier()
	p.expect(token.SEMI)
	return vd
}

func (p *Parser) parseType() ast.TypeNode {
	tok := p.curToken
	switch tok.Type {
	case token.INT:
		p.nextToken()
		if p.curIs(token.LBRACKET) {
			p.nextToken()
			p.expect(token.RBRACKET)
			return &ast.IntArrayTypeNode{Token: tok}
		}
		return &ast.IntTypeNode{Token: tok}
	case token.BOOLEAN:
		p.nextToken()
		return &ast.BooleanTypeNode{Token: tok}
	case token.IDENT:
		p.nextToken()
		return &ast.ClassTypeNode{Token: tok, Name: tok.Literal}
	default:
		p.addError("expected a type, got %s (%q)", tok.Type, tok.Literal)
		p.nextToken()
		return &ast.ClassTypeNode{Token: tok, Name: tok.Literal}
	}
}

func (p *Parser) parseMethodDecl() *ast.MethodDecl {
	md := &ast.MethodDecl{Token: p.curToken}
	p.expect(token.PUBLIC)
	md.ReturnType = p.parseType()
	md.Name = p.parseIdentifier()
	p.expect(token.LPAREN)
	if !p.curIs(token.RPAREN) {
		md.Params = append(md.Params, p.parseParam())
		for p.curIs(token.COMMA) {
			p.nextToken()
			md.Params = append(md.Params, p.parseParam())
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	for p.startsVarDecl() {
		md.Locals = append(md.Locals, p.parseVarDecl())
	}
	for !p.curIs(token.RETURN) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		md.Body = append(md.Body, p.parseStatement())
	}
	p.expect(token.RETURN)
	md.ReturnExpr = p.parseExpression(LOWEST)
	p.expect(token.SEMI)
	p.expect(token.RBRACE)
	return md
}

func (p *Parser) parseParam() *ast.VarDecl {
	vd := &ast.VarDecl{Token: p.curToken}
	vd.Type = p.parseType()
	vd.Name = p.parseIdentifier()
	return vd
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.curToken
	if tok.Type != token.IDENT {
		p.addError("expected identifier, got %s (%q)", tok.Type, tok.Literal)
	}
	p.nextToken()
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}
