package semantic

import (
	"os"
	"testing"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/parser"
)

// parseFixture parses a testdata file and fails the test if parsing itself
// breaks (syntax is never the thing under test here).
func parseFixture(t *testing.T, name string) (*ast.Program, string) {
	t.Helper()
	path := "../../testdata/" + name
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	p := parser.New(lexer.New(string(src)))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parsing fixture %s: %v", path, perr)
	}
	return prog, string(src)
}

func TestBuildRegistersClassesAndObjectRoot(t *testing.T) {
	prog, src := parseFixture(t, "Dispatch.java")
	sink := errors.NewSink(src, "Dispatch.java", 0)
	st := Build(prog, sink)

	if sink.HasErrors() {
		t.Fatalf("unexpected build errors: %v", sink.Errors())
	}

	object, ok := st.LookupClass(ObjectClassName)
	if !ok {
		t.Fatal("Object root not registered")
	}
	if object.Super != nil {
		t.Fatal("Object must have no superclass")
	}

	a, ok := st.LookupClass("A")
	if !ok || a.Super != object {
		t.Fatalf("A must be registered and extend Object by default")
	}

	b, ok := st.LookupClass("B")
	if !ok || b.Super != a {
		t.Fatalf("B must extend A")
	}
}

func TestBuildResolvesFieldsAndMethods(t *testing.T) {
	prog, src := parseFixture(t, "ArraySum.java")
	sink := errors.NewSink(src, "ArraySum.java", 0)
	st := Build(prog, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected build errors: %v", sink.Errors())
	}

	sum, ok := st.LookupClass("Sum")
	if !ok {
		t.Fatal("Sum class not registered")
	}
	m, ok := sum.OwnMethod("compute")
	if !ok {
		t.Fatal("Sum.compute not registered")
	}
	if len(m.Params) != 0 {
		t.Fatalf("Sum.compute should take no parameters, got %d", len(m.Params))
	}
	if len(m.Locals) != 3 {
		t.Fatalf("Sum.compute should have 3 locals (nums, i, total), got %d", len(m.Locals))
	}
}

func TestBuildOverrideSignatureMismatchIsReported(t *testing.T) {
	src := `class Main {
    public static void main(String[] args) {
        System.out.println(1);
    }
}

class A {
    public int f() {
        return 1;
    }
}

class B extends A {
    public boolean f() {
        return true;
    }
}
`
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	sink := errors.NewSink(src, "t.java", 0)
	Build(prog, sink)

	if !sink.HasErrors() {
		t.Fatal("expected an incompatible-override error")
	}
}

func TestBuildUnknownSuperclassFallsBackToObject(t *testing.T) {
	src := `class Main {
    public static void main(String[] args) {
        System.out.println(1);
    }
}

class A extends Ghost {
    public int f() {
        return 1;
    }
}
`
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	sink := errors.NewSink(src, "t.java", 0)
	st := Build(prog, sink)

	if !sink.HasErrors() {
		t.Fatal("expected an unknown-superclass error")
	}
	a, _ := st.LookupClass("A")
	object, _ := st.LookupClass(ObjectClassName)
	if a.Super != object {
		t.Fatal("A should fall back to extending Object after the error")
	}
}

func TestBuildCaseFoldCollisionIsReported(t *testing.T) {
	src := `class Main {
    public static void main(String[] args) {
        System.out.println(1);
    }
}

class widget {
    public int f() {
        return 1;
    }
}

class Widget {
    public int g() {
        return 2;
    }
}
`
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	sink := errors.NewSink(src, "t.java", 0)
	Build(prog, sink)

	found := false
	for _, e := range sink.Errors() {
		if e.Message == `class name "Widget" differs from "widget" only by letter case` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a case-fold collision error, got: %v", sink.Errors())
	}
}
