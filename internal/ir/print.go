package ir

import (
	"fmt"
	"io"
)

// Dump writes a human-readable disassembly of every block in p to w, in the
// style of a classic bytecode disassembler: a banner per block, then one
// numbered line per operation. Used by `mjc build --dump-tac` (§12).
func Dump(w io.Writer, p *Program) {
	for _, b := range p.Blocks {
		DumpBlock(w, b)
		fmt.Fprintln(w)
	}
}

// DumpBlock writes the disassembly of a single block.
func DumpBlock(w io.Writer, b *Block) {
	fmt.Fprintf(w, "== %s ==\n", b.Label)
	fmt.Fprintf(w, "ops: %d, maxVL: %d, maxR: %d, maxVG: %d, maxParams: %d\n",
		len(b.Ops), b.MaxVL, b.MaxR, b.MaxVG, b.MaxParams)
	for i, op := range b.Ops {
		fmt.Fprintf(w, "%04d  %s\n", i, FormatOp(op))
	}
}

// FormatOp renders a single TAC operation as text.
func FormatOp(op Op) string {
	switch op.Kind {
	case MOV:
		return fmt.Sprintf("MOV    %s, %s", op.R1, op.R2)
	case IMMED:
		return fmt.Sprintf("IMMED  %s, %d", op.R1, op.N)
	case LOAD:
		return fmt.Sprintf("LOAD   %s, [%s]", op.R1, op.R2)
	case STORE:
		return fmt.Sprintf("STORE  [%s], %s", op.R1, op.R2)
	case BINOP:
		return fmt.Sprintf("BINOP  %s, %s, %s, %s", op.Sub, op.R1, op.R2, op.R3)
	case PARAM:
		return fmt.Sprintf("PARAM  %s", op.R1)
	case CALL:
		return fmt.Sprintf("CALL   %s", op.R1)
	case RET:
		return "RET"
	case LABEL:
		return fmt.Sprintf("LABEL  %s:", op.Label)
	case JMP:
		return fmt.Sprintf("JMP    %s", op.Label)
	case JZ:
		return fmt.Sprintf("JZ     %s, %s", op.R1, op.Label)
	case MALLOC:
		return fmt.Sprintf("MALLOC %s, %s", op.R1, op.R2)
	case READ:
		return fmt.Sprintf("READ   %s", op.R1)
	case WRITE:
		return fmt.Sprintf("WRITE  %s", op.R1)
	case ADDROF:
		return fmt.Sprintf("ADDROF %s, &%s", op.R1, op.Label)
	case NOP:
		return "NOP"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", op.Kind)
	}
}
