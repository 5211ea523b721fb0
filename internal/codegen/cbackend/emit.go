// Package cbackend is the TAC→C backend (§4.5): it lowers an ir.Program
// into a single, self-contained, C89-compatible translation unit.
package cbackend

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/ir"
)

// Emit writes the complete C translation unit for p to w.
func Emit(w io.Writer, p *ir.Program) error {
	var buf bytes.Buffer

	writeHeader(&buf)
	writeGlobals(&buf, p)
	writeForwardDecls(&buf, p)
	writeMain(&buf)
	for _, b := range p.Blocks {
		writeBlock(&buf, b)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeHeader(buf *bytes.Buffer) {
	buf.WriteString("#include <stdio.h>\n")
	buf.WriteString("#include <stdlib.h>\n\n")
	buf.WriteString("typedef union word {\n")
	buf.WriteString("    long n;\n")
	buf.WriteString("    union word *ptr;\n")
	buf.WriteString("    void (*f)(void);\n")
	buf.WriteString("} word;\n\n")
}

func writeGlobals(buf *bytes.Buffer, p *ir.Program) {
	// param[] must be large enough both for the longest PARAM run any
	// caller pushes and for the widest prologue copy param[0..maxVL] any
	// callee performs (§4.5 point 6) — a block with more locals than
	// parameters still reads past p.MaxParams otherwise.
	maxParams := p.MaxParams
	for _, b := range p.Blocks {
		if n := b.MaxVL + 1; n > maxParams {
			maxParams = n
		}
	}
	if maxParams < 1 {
		maxParams = 1
	}
	fmt.Fprintf(buf, "word param[%d];\n", maxParams)
	buf.WriteString("int next_param = 0;\n")
	buf.WriteString("word r0 = {0};\n")
	for i := 0; i <= p.MaxVG; i++ {
		fmt.Fprintf(buf, "word vg%d = {0};\n", i)
	}
	buf.WriteString("\n")
}

func writeForwardDecls(buf *bytes.Buffer, p *ir.Program) {
	for _, b := range p.Blocks {
		fmt.Fprintf(buf, "void %s(void);\n", mangle(b.Label))
	}
	buf.WriteString("\n")
}

func writeMain(buf *bytes.Buffer) {
	buf.WriteString("int main(void) {\n")
	fmt.Fprintf(buf, "    %s();\n", mangle(ir.InitLabel))
	fmt.Fprintf(buf, "    %s();\n", mangle(ir.MainLabel))
	buf.WriteString("    return 0;\n")
	buf.WriteString("}\n\n")
}

func writeBlock(buf *bytes.Buffer, b *ir.Block) {
	fmt.Fprintf(buf, "void %s(void) {\n", mangle(b.Label))
	fmt.Fprintf(buf, "    word vl[%d];\n", b.MaxVL+1)
	if b.MaxR > 0 {
		buf.WriteString("    word ")
		for i := 1; i <= b.MaxR; i++ {
			if i > 1 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "r%d", i)
		}
		buf.WriteString(";\n")
	}
	buf.WriteString("    int p;\n")
	fmt.Fprintf(buf, "    for (p = 0; p <= %d; p++) vl[p] = param[p];\n", b.MaxVL)
	buf.WriteString("    next_param = 0;\n\n")

	for _, op := range b.Ops {
		if op.Kind == ir.LABEL && op.Label == b.Label {
			continue // the function signature already is this label
		}
		buf.WriteString("    ")
		buf.WriteString(writeOp(op))
		buf.WriteString("\n")
	}

	buf.WriteString("}\n\n")
}

// writeOp lowers one TAC op to a single C statement (§4.5's op-lowering
// table), via §8 invariant 5: every op produces exactly one statement,
// except LABEL (a C label) and NOP (an empty statement).
func writeOp(op ir.Op) string {
	switch op.Kind {
	case ir.MOV:
		return fmt.Sprintf("%s = %s;", op.R1, op.R2)
	case ir.IMMED:
		return fmt.Sprintf("%s.n = %d;", op.R1, op.N)
	case ir.LOAD:
		return fmt.Sprintf("%s = *(%s.ptr);", op.R1, op.R2)
	case ir.STORE:
		return fmt.Sprintf("*(%s.ptr) = %s;", op.R1, op.R2)
	case ir.BINOP:
		return writeBinop(op)
	case ir.PARAM:
		return fmt.Sprintf("param[next_param++] = %s;", op.R1)
	case ir.CALL:
		return fmt.Sprintf("(*(%s.f))();", op.R1)
	case ir.RET:
		return "return;"
	case ir.LABEL:
		return fmt.Sprintf("%s: ;", mangle(op.Label))
	case ir.JMP:
		return fmt.Sprintf("goto %s;", mangle(op.Label))
	case ir.JZ:
		return fmt.Sprintf("if (%s.n == 0) goto %s;", op.R1, mangle(op.Label))
	case ir.MALLOC:
		return fmt.Sprintf("%s.ptr = calloc(%s.n, sizeof(word));", op.R1, op.R2)
	case ir.READ:
		return fmt.Sprintf("scanf(\"%%ld\", &%s.n);", op.R1)
	case ir.WRITE:
		return fmt.Sprintf("printf(\"%%d\\n\", (int)%s.n);", op.R1)
	case ir.ADDROF:
		return fmt.Sprintf("%s.f = %s;", op.R1, mangle(op.Label))
	case ir.NOP:
		return ";"
	default:
		errors.Panic("cbackend: unknown TAC opcode %v", op.Kind)
		return ""
	}
}

func writeBinop(op ir.Op) string {
	if op.Sub == ir.Offset {
		return fmt.Sprintf("%s.ptr = %s.ptr + %s.n;", op.R1, op.R2, op.R3)
	}
	var operator string
	switch op.Sub {
	case ir.Add:
		operator = "+"
	case ir.Sub:
		operator = "-"
	case ir.Mul:
		operator = "*"
	case ir.Lt:
		operator = "<"
	case ir.And:
		operator = "&&"
	default:
		errors.Panic("cbackend: unknown BINOP sub-opcode %v", op.Sub)
	}
	return fmt.Sprintf("%s.n = %s.n %s %s.n;", op.R1, op.R2, operator, op.R3)
}

// mangle turns a TAC label into a legal C identifier (§4.5): `_` doubles to
// `__` first so it can never collide with the separators introduced next,
// then `.` and `@` both become `_`.
func mangle(label string) string {
	s := strings.ReplaceAll(label, "_", "__")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "@", "_")
	return s
}
