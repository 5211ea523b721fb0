package ir

import (
	"os"
	"testing"

	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/lexer"
	"github.com/mjlang/mjc/internal/parser"
	"github.com/mjlang/mjc/internal/semantic"
)

func lowerFixture(t *testing.T, name string) *Program {
	t.Helper()
	src, err := os.ReadFile("../../testdata/" + name)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	p := parser.New(lexer.New(string(src)))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	sink := errors.NewSink(string(src), name, 0)
	st := semantic.Build(prog, sink)
	semantic.Check(prog, st, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	return Lower(prog, st)
}

func findBlock(p *Program, label string) *Block {
	for _, b := range p.Blocks {
		if b.Label == label {
			return b
		}
	}
	return nil
}

func TestLowerProducesInitMainAndEveryMethod(t *testing.T) {
	p := lowerFixture(t, "Dispatch.java")

	if findBlock(p, InitLabel) == nil {
		t.Error("missing INIT block")
	}
	if findBlock(p, MainLabel) == nil {
		t.Error("missing MAIN block")
	}
	for _, want := range []string{"A.value", "A.describe", "B.value"} {
		if findBlock(p, want) == nil {
			t.Errorf("missing block %q", want)
		}
	}
}

func TestLowerInitBuildsOneVtablePerClassWithSlots(t *testing.T) {
	p := lowerFixture(t, "Dispatch.java")
	initBlock := findBlock(p, InitLabel)

	mallocs := 0
	addrofs := 0
	for _, op := range initBlock.Ops {
		switch op.Kind {
		case MALLOC:
			mallocs++
		case ADDROF:
			addrofs++
		}
	}
	// A has 2 own methods (value, describe); B overrides value (same slot)
	// and has no new methods, so B's vtable has 2 slots too -> 2 mallocs,
	// 4 ADDROFs total (2 slots x 2 classes).
	if mallocs != 2 {
		t.Errorf("got %d MALLOCs in INIT, want 2 (one vtable per class)", mallocs)
	}
	if addrofs != 4 {
		t.Errorf("got %d ADDROFs in INIT, want 4", addrofs)
	}
}

func TestLowerMethodCallUsesStaticSlotAndRuntimeVtable(t *testing.T) {
	p := lowerFixture(t, "Dispatch.java")
	describe := findBlock(p, "A.describe")

	// this.value() inside A.describe: must LOAD the vtable pointer through
	// `this` (vl[0]) at runtime, then LOAD the function pointer from that
	// vtable and CALL it — never ADDROF a specific implementation directly,
	// since the receiver's dynamic type decides which value() runs.
	sawLoad := 0
	sawCall := 0
	for _, op := range describe.Ops {
		switch op.Kind {
		case LOAD:
			sawLoad++
		case CALL:
			sawCall++
		case ADDROF:
			t.Error("A.describe must not ADDROF a method directly; dispatch must go through the vtable")
		}
	}
	if sawLoad < 2 {
		t.Errorf("expected at least 2 LOADs (vtable pointer, function pointer), got %d", sawLoad)
	}
	if sawCall != 1 {
		t.Errorf("expected exactly 1 CALL, got %d", sawCall)
	}
}

func TestLowerMethodPrologueRegisterConventions(t *testing.T) {
	p := lowerFixture(t, "Factorial.java")
	fac := findBlock(p, "Fac.compute")
	if fac == nil {
		t.Fatal("missing Fac.compute block")
	}
	// vl[0] = this, vl[1] = num (param), vl[2] = result (local) -> MaxVL = 2
	if fac.MaxVL != 2 {
		t.Errorf("Fac.compute MaxVL = %d, want 2", fac.MaxVL)
	}
}

func TestLowerMethodDepositsReturnValueBeforeRet(t *testing.T) {
	p := lowerFixture(t, "Factorial.java")
	compute := findBlock(p, "Fac.compute")
	n := len(compute.Ops)
	if n < 2 {
		t.Fatalf("Fac.compute has too few ops: %d", n)
	}
	if compute.Ops[n-1].Kind != RET {
		t.Fatalf("last op = %v, want RET", compute.Ops[n-1].Kind)
	}
	mov := compute.Ops[n-2]
	if mov.Kind != MOV || mov.R1 != Global(0) {
		t.Fatalf("second-to-last op = %+v, want MOV into vg0", mov)
	}
}
