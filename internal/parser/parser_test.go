package parser

import (
	"testing"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := New(lexer.New(src))
	expr := p.parseExpression(LOWEST)
	if len(p.errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.errors)
	}
	return expr
}

func TestParseExpressionPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("top-level operator = %T %+v, want + BinaryExpression", expr, expr)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("right operand = %T, want * BinaryExpression (tighter binding)", bin.Right)
	}
}

func TestParseExpressionLogicalAndBindsLoosest(t *testing.T) {
	expr := parseExpr(t, "1 < 2 && 3 < 4")
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != "&&" {
		t.Fatalf("top-level operator = %+v, want &&", expr)
	}
	if _, ok := bin.Left.(*ast.BinaryExpression); !ok {
		t.Fatalf("left operand should itself be a < BinaryExpression")
	}
}

func TestParseExpressionMethodCallChain(t *testing.T) {
	expr := parseExpr(t, "this.f(1).g()")
	outer, ok := expr.(*ast.MethodCallExpression)
	if !ok || outer.Method.Value != "g" {
		t.Fatalf("outer call = %+v, want method g", expr)
	}
	inner, ok := outer.Receiver.(*ast.MethodCallExpression)
	if !ok || inner.Method.Value != "f" {
		t.Fatalf("inner call = %+v, want method f", outer.Receiver)
	}
	if len(inner.Args) != 1 {
		t.Fatalf("got %d args to f, want 1", len(inner.Args))
	}
}

func TestParseExpressionIndexAndLength(t *testing.T) {
	expr := parseExpr(t, "arr[0].length")
	lenExpr, ok := expr.(*ast.LengthExpression)
	if !ok {
		t.Fatalf("got %T, want LengthExpression", expr)
	}
	if _, ok := lenExpr.Array.(*ast.IndexExpression); !ok {
		t.Fatalf("got %T, want IndexExpression underneath .length", lenExpr.Array)
	}
}

func TestParseExpressionNewObjectAndArray(t *testing.T) {
	obj := parseExpr(t, "new Widget()")
	newObj, ok := obj.(*ast.NewObjectExpression)
	if !ok || newObj.ClassName.Value != "Widget" {
		t.Fatalf("got %+v, want NewObjectExpression(Widget)", obj)
	}

	arr := parseExpr(t, "new int[10]")
	newArr, ok := arr.(*ast.NewArrayExpression)
	if !ok {
		t.Fatalf("got %T, want NewArrayExpression", arr)
	}
	size, ok := newArr.Size.(*ast.IntegerLiteral)
	if !ok || size.Value != 10 {
		t.Fatalf("got %+v, want IntegerLiteral(10)", newArr.Size)
	}
}

func TestParseProgramFullClass(t *testing.T) {
	src := `class Main {
    public static void main(String[] args) {
        System.out.println(1);
    }
}

class Shape {
    int sides;
    public int sideCount() {
        return sides;
    }
}
`
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if prog.MainClass == nil || prog.MainClass.Name.Value != "Main" {
		t.Fatal("missing or misnamed main class")
	}
	if len(prog.Classes) != 1 || prog.Classes[0].Name.Value != "Shape" {
		t.Fatalf("got %d aux classes, want 1 named Shape", len(prog.Classes))
	}
	if len(prog.Classes[0].Fields) != 1 || prog.Classes[0].Fields[0].Name.Value != "sides" {
		t.Fatal("Shape should declare one field named sides")
	}
}

func TestParseProgramReportsSyntaxError(t *testing.T) {
	p := New(lexer.New("class Main { public static void main(String[] args) { 1 + ; } }"))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for the malformed statement")
	}
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one recorded SyntaxError")
	}
}
