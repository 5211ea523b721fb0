// Package ast defines the MiniJava parse-tree node types. A Program is the
// exact shape the Symbol Builder, Type Checker and IR Lowering stages walk;
// it stands in for the "enter/exit hook per grammar alternative" interface
// the specification treats as an external collaborator.
package ast

import (
	"bytes"

	"github.com/mjlang/mjc/internal/token"
)

// Node is the base interface every parse-tree node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that yields a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without yielding a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the parse tree: exactly one MainClass followed by
// zero or more auxiliary ClassDecls, per §6.
type Program struct {
	MainClass *MainClass
	Classes   []*ClassDecl
}

func (p *Program) TokenLiteral() string {
	if p.MainClass != nil {
		return p.MainClass.TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	if p.MainClass != nil {
		out.WriteString(p.MainClass.String())
	}
	for _, c := range p.Classes {
		out.WriteString(c.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if p.MainClass != nil {
		return p.MainClass.Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// Identifier names a class, field, parameter, local, or method. It is also
// used as the "identifier use" expression form from §4.2.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos }

// IntegerLiteral is an int literal expression.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }
func (il *IntegerLiteral) Pos() token.Position  { return il.Token.Pos }

// BooleanLiteral is a true/false literal expression.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() token.Position  { return bl.Token.Pos }

// ThisExpression is the `this` expression form.
type ThisExpression struct {
	Token token.Token
}

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) String() string       { return "this" }
func (t *ThisExpression) Pos() token.Position  { return t.Token.Pos }
