package ast

import (
	"bytes"

	"github.com/mjlang/mjc/internal/token"
)

// BlockStatement is `{ stmt* }`.
type BlockStatement struct {
	Token      token.Token // `{`
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement is `if (cond) then [else alt]`.
type IfStatement struct {
	Token token.Token // `if`
	Cond  Expression
	Then  Statement
	Else  Statement // nil when there is no else branch
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Cond.String())
	out.WriteString(") ")
	out.WriteString(i.Then.String())
	if i.Else != nil {
		out.WriteString(" else ")
		out.WriteString(i.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token token.Token
	Cond  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Token token.Token
	Body  Statement
	Cond  Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Cond.String() + ");"
}

// PrintStatement is `System.out.println(expr);`.
type PrintStatement struct {
	Token token.Token
	Value Expression
}

func (p *PrintStatement) statementNode()       {}
func (p *PrintStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStatement) Pos() token.Position  { return p.Token.Pos }
func (p *PrintStatement) String() string {
	return "System.out.println(" + p.Value.String() + ");"
}

// AssignStatement is `id = expr;`.
type AssignStatement struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Value Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) Pos() token.Position  { return a.Token.Pos }
func (a *AssignStatement) String() string {
	return a.Name.Value + " = " + a.Value.String() + ";"
}

// ArrayAssignStatement is `id[index] = expr;`.
type ArrayAssignStatement struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Index Expression
	Value Expression
}

func (a *ArrayAssignStatement) statementNode()       {}
func (a *ArrayAssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAssignStatement) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayAssignStatement) String() string {
	return a.Name.Value + "[" + a.Index.String() + "] = " + a.Value.String() + ";"
}
