package types

import "testing"

func TestHasVarParamsBeforeLocals(t *testing.T) {
	owner := NewClass("C", nil)
	m := NewMethod("f", owner, Int)
	m.AddParam("a", Int)
	m.AddParam("b", Boolean)
	m.AddLocal("c", IntArray)

	typ, isParam, ordinal, ok := m.HasVar("b")
	if !ok || !isParam || ordinal != 1 || !typ.Equals(Boolean) {
		t.Fatalf("HasVar(b) = %v %v %d %v, want Boolean true 1 true", typ, isParam, ordinal, ok)
	}

	typ, isParam, ordinal, ok = m.HasVar("c")
	if !ok || isParam || ordinal != 0 || !typ.Equals(IntArray) {
		t.Fatalf("HasVar(c) = %v %v %d %v, want IntArray false 0 true", typ, isParam, ordinal, ok)
	}

	if _, _, _, ok := m.HasVar("nope"); ok {
		t.Fatal("HasVar should report false for an undeclared name")
	}
}

func TestQualifiedName(t *testing.T) {
	owner := NewClass("Widget", nil)
	m := NewMethod("spin", owner, Int)
	if got := m.QualifiedName(); got != "Widget.spin" {
		t.Fatalf("got %q, want %q", got, "Widget.spin")
	}
}

func TestSignatureCompatibleWith(t *testing.T) {
	owner := NewClass("C", nil)
	base := NewMethod("f", owner, Int)
	base.AddParam("a", Int)

	sameSig := NewMethod("f", owner, Int)
	sameSig.AddParam("a", Int)
	if !base.SignatureCompatibleWith(sameSig) {
		t.Error("identical param types and return type should be compatible")
	}

	wrongArity := NewMethod("f", owner, Int)
	if base.SignatureCompatibleWith(wrongArity) {
		t.Error("a different parameter count must not be signature-compatible")
	}

	wrongParamType := NewMethod("f", owner, Int)
	wrongParamType.AddParam("a", Boolean)
	if base.SignatureCompatibleWith(wrongParamType) {
		t.Error("a different parameter type must not be signature-compatible")
	}
}
