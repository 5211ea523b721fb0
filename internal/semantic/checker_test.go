package semantic

import (
	"testing"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/errors"
)

// collectMethodCalls walks every method body and return expression in prog
// and gathers every MethodCallExpression node, recursively, so tests can
// assert a property holds for all of them without hand-picking one node.
func collectMethodCalls(prog *ast.Program) []*ast.MethodCallExpression {
	var calls []*ast.MethodCallExpression
	var walkExpr func(ast.Expression)
	var walkStmt func(ast.Statement)

	walkExpr = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.MethodCallExpression:
			calls = append(calls, n)
			walkExpr(n.Receiver)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *ast.NewArrayExpression:
			walkExpr(n.Size)
		case *ast.NotExpression:
			walkExpr(n.Operand)
		case *ast.ParenExpression:
			walkExpr(n.Inner)
		case *ast.LengthExpression:
			walkExpr(n.Array)
		case *ast.IndexExpression:
			walkExpr(n.Array)
			walkExpr(n.Index)
		case *ast.BinaryExpression:
			walkExpr(n.Left)
			walkExpr(n.Right)
		}
	}

	walkStmt = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.BlockStatement:
			for _, inner := range n.Statements {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkExpr(n.Cond)
			walkStmt(n.Then)
			if n.Else != nil {
				walkStmt(n.Else)
			}
		case *ast.WhileStatement:
			walkExpr(n.Cond)
			walkStmt(n.Body)
		case *ast.DoWhileStatement:
			walkStmt(n.Body)
			walkExpr(n.Cond)
		case *ast.PrintStatement:
			walkExpr(n.Value)
		case *ast.AssignStatement:
			walkExpr(n.Value)
		case *ast.ArrayAssignStatement:
			walkExpr(n.Index)
			walkExpr(n.Value)
		}
	}

	if prog.MainClass != nil {
		walkStmt(prog.MainClass.Body)
	}
	for _, cd := range prog.Classes {
		for _, md := range cd.Methods {
			for _, s := range md.Body {
				walkStmt(s)
			}
			if md.ReturnExpr != nil {
				walkExpr(md.ReturnExpr)
			}
		}
	}
	return calls
}

func buildAndCheck(t *testing.T, name string) *errors.Sink {
	t.Helper()
	prog, src := parseFixture(t, name)
	sink := errors.NewSink(src, name, 0)
	st := Build(prog, sink)
	Check(prog, st, sink)
	return sink
}

func TestCheckAcceptsWellTypedPrograms(t *testing.T) {
	for _, name := range []string{"Arithmetic.java", "Factorial.java", "ArraySum.java", "Dispatch.java"} {
		sink := buildAndCheck(t, name)
		if sink.HasErrors() {
			t.Errorf("%s: unexpected type errors: %v", name, sink.Errors())
		}
	}
}

func TestCheckRejectsReturnTypeMismatch(t *testing.T) {
	sink := buildAndCheck(t, "TypeError.java")
	if !sink.HasErrors() {
		t.Fatal("expected a return-type mismatch error")
	}
}

func TestCheckRejectsArityMismatch(t *testing.T) {
	sink := buildAndCheck(t, "ArityError.java")
	if !sink.HasErrors() {
		t.Fatal("expected an argument-count mismatch error")
	}
}

func TestCheckRejectsUndeclaredIdentifier(t *testing.T) {
	sink := buildAndCheck(t, "UndeclaredVariable.java")
	if !sink.HasErrors() {
		t.Fatal("expected an undeclared-identifier error")
	}
}

func TestCheckRecordsReceiverTypeForMethodCalls(t *testing.T) {
	prog, src := parseFixture(t, "Dispatch.java")
	sink := errors.NewSink(src, "Dispatch.java", 0)
	st := Build(prog, sink)
	Check(prog, st, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}

	calls := collectMethodCalls(prog)
	if len(calls) == 0 {
		t.Fatal("expected at least one method call in Dispatch.java")
	}
	for _, call := range calls {
		if _, ok := st.ReceiverType(call); !ok {
			t.Errorf("call to %q has no recorded receiver type", call.Method.Value)
		}
	}
}
