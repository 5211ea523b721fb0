package ast

import (
	"bytes"
	"strings"

	"github.com/mjlang/mjc/internal/token"
)

// NewArrayExpression is `new int[size]`.
type NewArrayExpression struct {
	Token token.Token // `new`
	Size  Expression
}

func (n *NewArrayExpression) expressionNode()      {}
func (n *NewArrayExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewArrayExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewArrayExpression) String() string       { return "new int[" + n.Size.String() + "]" }

// NewObjectExpression is `new C()`.
type NewObjectExpression struct {
	Token     token.Token // `new`
	ClassName *Identifier
}

func (n *NewObjectExpression) expressionNode()      {}
func (n *NewObjectExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewObjectExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewObjectExpression) String() string       { return "new " + n.ClassName.Value + "()" }

// NotExpression is `!expr`.
type NotExpression struct {
	Token   token.Token // `!`
	Operand Expression
}

func (n *NotExpression) expressionNode()      {}
func (n *NotExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NotExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NotExpression) String() string       { return "!" + n.Operand.String() }

// ParenExpression is `(expr)`: a type-irrelevant passthrough wrapper kept
// only so the parse tree mirrors the grammar alternative from §4.2.
type ParenExpression struct {
	Token token.Token // `(`
	Inner Expression
}

func (p *ParenExpression) expressionNode()      {}
func (p *ParenExpression) TokenLiteral() string { return p.Token.Literal }
func (p *ParenExpression) Pos() token.Position  { return p.Token.Pos }
func (p *ParenExpression) String() string       { return "(" + p.Inner.String() + ")" }

// LengthExpression is `arr.length`.
type LengthExpression struct {
	Token token.Token // `.`
	Array Expression
}

func (l *LengthExpression) expressionNode()      {}
func (l *LengthExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LengthExpression) Pos() token.Position  { return l.Token.Pos }
func (l *LengthExpression) String() string       { return l.Array.String() + ".length" }

// IndexExpression is `arr[index]`.
type IndexExpression struct {
	Token token.Token // `[`
	Array Expression
	Index Expression
}

func (ix *IndexExpression) expressionNode()      {}
func (ix *IndexExpression) TokenLiteral() string { return ix.Token.Literal }
func (ix *IndexExpression) Pos() token.Position  { return ix.Token.Pos }
func (ix *IndexExpression) String() string {
	return ix.Array.String() + "[" + ix.Index.String() + "]"
}

// BinaryExpression covers `&&`, `<`, `+`, `-`, `*`.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// MethodCallExpression is `recv.method(args...)`.
type MethodCallExpression struct {
	Token    token.Token // `.`
	Receiver Expression
	Method   *Identifier
	Args     []Expression
}

func (m *MethodCallExpression) expressionNode()      {}
func (m *MethodCallExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MethodCallExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MethodCallExpression) String() string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = a.String()
	}
	return m.Receiver.String() + "." + m.Method.Value + "(" + strings.Join(args, ", ") + ")"
}
