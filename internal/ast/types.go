package ast

import "github.com/mjlang/mjc/internal/token"

// TypeNode is a type denotation appearing in a declaration: `int`,
// `boolean`, `int[]`, or a bare class identifier. The Type Extractor (§4.1)
// consumes these through TypeVisitor rather than a type switch, matching the
// specification's "visit-style interface for type denotations".
type TypeNode interface {
	Node
	Accept(v TypeVisitor)
}

// TypeVisitor dispatches over the closed set of type denotations.
type TypeVisitor interface {
	VisitInt(*IntTypeNode)
	VisitBoolean(*BooleanTypeNode)
	VisitIntArray(*IntArrayTypeNode)
	VisitClass(*ClassTypeNode)
}

// IntTypeNode denotes `int`.
type IntTypeNode struct{ Token token.Token }

func (n *IntTypeNode) TokenLiteral() string  { return n.Token.Literal }
func (n *IntTypeNode) String() string        { return "int" }
func (n *IntTypeNode) Pos() token.Position   { return n.Token.Pos }
func (n *IntTypeNode) Accept(v TypeVisitor)  { v.VisitInt(n) }

// BooleanTypeNode denotes `boolean`.
type BooleanTypeNode struct{ Token token.Token }

func (n *BooleanTypeNode) TokenLiteral() string { return n.Token.Literal }
func (n *BooleanTypeNode) String() string       { return "boolean" }
func (n *BooleanTypeNode) Pos() token.Position  { return n.Token.Pos }
func (n *BooleanTypeNode) Accept(v TypeVisitor) { v.VisitBoolean(n) }

// IntArrayTypeNode denotes `int[]`.
type IntArrayTypeNode struct{ Token token.Token }

func (n *IntArrayTypeNode) TokenLiteral() string { return n.Token.Literal }
func (n *IntArrayTypeNode) String() string       { return "int[]" }
func (n *IntArrayTypeNode) Pos() token.Position  { return n.Token.Pos }
func (n *IntArrayTypeNode) Accept(v TypeVisitor) { v.VisitIntArray(n) }

// ClassTypeNode denotes a bare identifier used as a type: the class it names
// is resolved later by the Symbol Builder (§4.1); the parse tree only
// carries the spelled name.
type ClassTypeNode struct {
	Token token.Token
	Name  string
}

func (n *ClassTypeNode) TokenLiteral() string { return n.Token.Literal }
func (n *ClassTypeNode) String() string       { return n.Name }
func (n *ClassTypeNode) Pos() token.Position  { return n.Token.Pos }
func (n *ClassTypeNode) Accept(v TypeVisitor) { v.VisitClass(n) }
