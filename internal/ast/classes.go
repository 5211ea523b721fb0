package ast

import (
	"bytes"

	"github.com/mjlang/mjc/internal/token"
)

// MainClass is the one mandatory class with the program's entry statement.
type MainClass struct {
	Token   token.Token // the `class` token
	Name    *Identifier
	ArgName string // the `String[] <ArgName>` main-parameter name; unused by MiniJava programs but part of the grammar
	Body    Statement
}

func (m *MainClass) TokenLiteral() string { return m.Token.Literal }
func (m *MainClass) Pos() token.Position  { return m.Token.Pos }
func (m *MainClass) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(m.Name.Value)
	out.WriteString(" { public static void main(String[] ")
	out.WriteString(m.ArgName)
	out.WriteString(") ")
	out.WriteString(m.Body.String())
	out.WriteString(" }")
	return out.String()
}

// ClassDecl is an auxiliary class: optional `extends`, fields, methods.
type ClassDecl struct {
	Token      token.Token // the `class` token
	Name       *Identifier
	Superclass *Identifier // nil when there is no `extends` clause
	Fields     []*VarDecl
	Methods    []*MethodDecl
}

func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(c.Name.Value)
	if c.Superclass != nil {
		out.WriteString(" extends ")
		out.WriteString(c.Superclass.Value)
	}
	out.WriteString(" { ")
	for _, f := range c.Fields {
		out.WriteString(f.String())
		out.WriteString("; ")
	}
	for _, m := range c.Methods {
		out.WriteString(m.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is a typed name: a field, a parameter, or a local variable.
type VarDecl struct {
	Token token.Token // the type's first token
	Type  TypeNode
	Name  *Identifier
}

func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	return v.Type.String() + " " + v.Name.Value
}

// MethodDecl is a `public <type> <name>(<params>) { <locals> <stmts> return
// <expr>; }` declaration. Every MiniJava method has exactly one trailing
// return expression (§6).
type MethodDecl struct {
	Token      token.Token // the `public` token
	ReturnType TypeNode
	Name       *Identifier
	Params     []*VarDecl
	Locals     []*VarDecl
	Body       []Statement
	ReturnExpr Expression
}

func (m *MethodDecl) TokenLiteral() string { return m.Token.Literal }
func (m *MethodDecl) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDecl) String() string {
	var out bytes.Buffer
	out.WriteString("public ")
	out.WriteString(m.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(m.Name.Value)
	out.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(") { ... }")
	return out.String()
}
