package ir

import "testing"

func TestRegString(t *testing.T) {
	cases := []struct {
		r    Reg
		want string
	}{
		{Zero(), "r0"},
		{Scratch(3), "r3"},
		{Local(2), "vl[2]"},
		{Global(1), "vg1"},
	}
	for _, c := range cases {
		if got := c.r.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestBlockTracksMaxima(t *testing.T) {
	b := NewBlock("A.f")
	b.emit(Mov(Local(4), Scratch(2)))
	b.emit(Binop(Add, Scratch(5), Scratch(1), Global(3)))

	if b.MaxVL != 4 {
		t.Errorf("MaxVL = %d, want 4", b.MaxVL)
	}
	if b.MaxR != 5 {
		t.Errorf("MaxR = %d, want 5", b.MaxR)
	}
	if b.MaxVG != 3 {
		t.Errorf("MaxVG = %d, want 3", b.MaxVG)
	}
}

func TestNewBlockEmitsEntryLabel(t *testing.T) {
	b := NewBlock("A.f")
	if len(b.Ops) != 1 {
		t.Fatalf("got %d ops, want 1 (the entry label)", len(b.Ops))
	}
	if b.Ops[0].Kind != LABEL || b.Ops[0].Label != "A.f" {
		t.Fatalf("entry op = %+v, want LABEL A.f", b.Ops[0])
	}
}

func TestProgramAddBlockTracksProgramMaxima(t *testing.T) {
	p := &Program{}
	b1 := NewBlock("X")
	b1.emit(Param(Scratch(1)))
	b1.MaxParams = 2
	b1.MaxVG = 1

	b2 := NewBlock("Y")
	b2.MaxParams = 5
	b2.MaxVG = 4

	p.addBlock(b1)
	p.addBlock(b2)

	if p.MaxParams != 5 {
		t.Errorf("Program.MaxParams = %d, want 5", p.MaxParams)
	}
	if p.MaxVG != 4 {
		t.Errorf("Program.MaxVG = %d, want 4", p.MaxVG)
	}
}
