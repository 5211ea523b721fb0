package ir

import (
	"fmt"

	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/semantic"
	"github.com/mjlang/mjc/internal/types"
)

// InitLabel and MainLabel name the two program-level pseudo-methods (§4.4):
// INIT constructs every class's method table: MAIN is the main class's
// entry point.
const (
	InitLabel = "INIT"
	MainLabel = "MAIN"
)

// retGlobal is the vg index every method's return value is deposited into
// before RET, and that every call site reads immediately after CALL
// ("the caller picks it up from a known vg", §4.4).
const retGlobal = 0

// Lower walks a type-checked Program against its SymbolTable and produces
// one TAC Block per method plus INIT and MAIN (§4.4). The type checker must
// have already run — method-call lowering reads the static receiver types
// it recorded.
func Lower(prog *ast.Program, st *semantic.SymbolTable) *Program {
	l := &lowering{st: st, classVG: make(map[*types.Class]int)}

	// Reserve one vg slot per registered class (stable registration order,
	// §8 invariant 4), after the shared return-value slot at vg0.
	for i, c := range st.Classes() {
		l.classVG[c] = 1 + i
	}

	out := &Program{}
	out.addBlock(l.lowerInit(st))
	out.addBlock(l.lowerMain(prog.MainClass, st))
	for _, cd := range prog.Classes {
		class, _ := st.LookupClass(cd.Name.Value)
		for _, md := range cd.Methods {
			method, _ := class.OwnMethod(md.Name.Value)
			out.addBlock(l.lowerMethod(class, method, md))
		}
	}
	return out
}

type lowering struct {
	st      *semantic.SymbolTable
	classVG map[*types.Class]int

	b           *Block
	nextScratch int
	nextLabel   int

	class  *types.Class
	method *types.Method // nil while lowering INIT
}

func (l *lowering) fresh() Reg {
	l.nextScratch++
	return Scratch(l.nextScratch)
}

func (l *lowering) freshLabel(scope, tag string) string {
	l.nextLabel++
	return fmt.Sprintf("%s@%s%d", scope, tag, l.nextLabel)
}

func (l *lowering) emit(op Op) { l.b.emit(op) }

// lowerInit builds the method-table constructor (§4.4: "INIT, which
// constructs the method tables at program start").
func (l *lowering) lowerInit(st *semantic.SymbolTable) *Block {
	l.b = NewBlock(InitLabel)
	l.nextScratch = 0
	l.class, l.method = nil, nil

	for _, c := range st.Classes() {
		slots := c.MethodTableLayout()
		if len(slots) == 0 {
			continue
		}

		sizeReg := l.fresh()
		l.emit(Immed(sizeReg, int64(len(slots))))
		tableReg := l.fresh()
		l.emit(Malloc(tableReg, sizeReg))

		for i, name := range slots {
			impl, _ := c.GetAnyMethod(name)
			idxReg := l.fresh()
			l.emit(Immed(idxReg, int64(i)))
			addrReg := l.fresh()
			l.emit(Binop(Offset, addrReg, tableReg, idxReg))
			fnReg := l.fresh()
			l.emit(Addrof(fnReg, methodLabel(impl)))
			l.emit(Store(addrReg, fnReg))
		}

		l.emit(Mov(Global(l.classVG[c]), tableReg))
	}

	l.emit(Ret())
	return l.b
}

// lowerMain lowers the main class's single entry statement (§4.4).
func (l *lowering) lowerMain(mc *ast.MainClass, st *semantic.SymbolTable) *Block {
	l.b = NewBlock(MainLabel)
	l.nextScratch = 0

	mainClass, _ := st.LookupClass(mc.Name.Value)
	l.class = mainClass
	l.method = types.NewMethod("main", mainClass, types.Type{})

	l.lowerStatement(mc.Body)
	l.emit(Ret())
	return l.b
}

// lowerMethod lowers one user-declared method body (§4.4).
func (l *lowering) lowerMethod(class *types.Class, method *types.Method, md *ast.MethodDecl) *Block {
	label := methodLabel(method)
	l.b = NewBlock(label)
	l.nextScratch = 0
	l.class = class
	l.method = method

	for _, stmt := range md.Body {
		l.lowerStatement(stmt)
	}

	retReg := l.lowerExpr(md.ReturnExpr)
	l.emit(Mov(Global(retGlobal), retReg))
	l.emit(Ret())
	return l.b
}

// methodLabel is the unmangled, human-readable TAC label for a method;
// name mangling into a legal C identifier is the backend's job (§4.5).
func methodLabel(m *types.Method) string {
	return m.QualifiedName()
}

// ---- statements ------------------------------------------------------

func (l *lowering) lowerStatement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.BlockStatement:
		for _, inner := range st.Statements {
			l.lowerStatement(inner)
		}
	case *ast.IfStatement:
		l.lowerIf(st)
	case *ast.WhileStatement:
		l.lowerWhile(st)
	case *ast.DoWhileStatement:
		l.lowerDoWhile(st)
	case *ast.PrintStatement:
		r := l.lowerExpr(st.Value)
		l.emit(Write(r))
	case *ast.AssignStatement:
		l.lowerAssign(st)
	case *ast.ArrayAssignStatement:
		l.lowerArrayAssign(st)
	default:
		errors.Panic("ir: unhandled statement type %T", s)
	}
}

func (l *lowering) lowerIf(st *ast.IfStatement) {
	scope := l.b.Label
	elseLabel := l.freshLabel(scope, "else")
	endLabel := l.freshLabel(scope, "endif")

	cond := l.lowerExpr(st.Cond)
	l.emit(Jz(cond, elseLabel))
	l.lowerStatement(st.Then)
	l.emit(Jmp(endLabel))
	l.emit(Label_(elseLabel))
	if st.Else != nil {
		l.lowerStatement(st.Else)
	}
	l.emit(Label_(endLabel))
}

func (l *lowering) lowerWhile(st *ast.WhileStatement) {
	scope := l.b.Label
	startLabel := l.freshLabel(scope, "while")
	endLabel := l.freshLabel(scope, "endwhile")

	l.emit(Label_(startLabel))
	cond := l.lowerExpr(st.Cond)
	l.emit(Jz(cond, endLabel))
	l.lowerStatement(st.Body)
	l.emit(Jmp(startLabel))
	l.emit(Label_(endLabel))
}

func (l *lowering) lowerDoWhile(st *ast.DoWhileStatement) {
	scope := l.b.Label
	startLabel := l.freshLabel(scope, "dowhile")
	afterLabel := l.freshLabel(scope, "enddowhile")

	l.emit(Label_(startLabel))
	l.lowerStatement(st.Body)
	cond := l.lowerExpr(st.Cond)
	l.emit(Jz(cond, afterLabel))
	l.emit(Jmp(startLabel))
	l.emit(Label_(afterLabel))
}

func (l *lowering) lowerAssign(st *ast.AssignStatement) {
	val := l.lowerExpr(st.Value)
	if vl, ok := l.localSlot(st.Name.Value); ok {
		l.emit(Mov(Local(vl), val))
		return
	}
	addr := l.fieldAddr(st.Name.Value)
	l.emit(Store(addr, val))
}

func (l *lowering) lowerArrayAssign(st *ast.ArrayAssignStatement) {
	arr := l.lowerExpr(&ast.Identifier{Token: st.Token, Value: st.Name.Value})
	idx := l.lowerExpr(st.Index)
	val := l.lowerExpr(st.Value)

	one := l.fresh()
	l.emit(Immed(one, 1))
	idxPlus1 := l.fresh()
	l.emit(Binop(Add, idxPlus1, idx, one))
	addr := l.fresh()
	l.emit(Binop(Offset, addr, arr, idxPlus1))
	l.emit(Store(addr, val))
}

// ---- expressions -----------------------------------------------------

func (l *lowering) lowerExpr(e ast.Expression) Reg {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		r := l.fresh()
		l.emit(Immed(r, n.Value))
		return r
	case *ast.BooleanLiteral:
		r := l.fresh()
		v := int64(0)
		if n.Value {
			v = 1
		}
		l.emit(Immed(r, v))
		return r
	case *ast.ThisExpression:
		r := l.fresh()
		l.emit(Mov(r, Local(0)))
		return r
	case *ast.Identifier:
		return l.lowerIdentifier(n.Value)
	case *ast.NewArrayExpression:
		return l.lowerNewArray(n)
	case *ast.NewObjectExpression:
		return l.lowerNewObject(n)
	case *ast.NotExpression:
		operand := l.lowerExpr(n.Operand)
		one := l.fresh()
		l.emit(Immed(one, 1))
		dst := l.fresh()
		l.emit(Binop(Sub, dst, one, operand))
		return dst
	case *ast.ParenExpression:
		return l.lowerExpr(n.Inner)
	case *ast.LengthExpression:
		arr := l.lowerExpr(n.Array)
		return l.loadWord(arr, 0)
	case *ast.IndexExpression:
		return l.lowerIndex(n)
	case *ast.BinaryExpression:
		return l.lowerBinary(n)
	case *ast.MethodCallExpression:
		return l.lowerCall(n)
	default:
		errors.Panic("ir: unhandled expression type %T", e)
		return Reg{}
	}
}

// lowerIdentifier lowers a method-local variable read or an (own or
// inherited) field read (§4.4).
func (l *lowering) lowerIdentifier(name string) Reg {
	if vl, ok := l.localSlot(name); ok {
		r := l.fresh()
		l.emit(Mov(r, Local(vl)))
		return r
	}
	addr := l.fieldAddr(name)
	dst := l.fresh()
	l.emit(Load(dst, addr))
	return dst
}

// localSlot maps a method-local name to its vl[] index: vl[0] is `this`,
// vl[1..] are parameters in declaration order, followed by locals (§4.4).
func (l *lowering) localSlot(name string) (int, bool) {
	if l.method == nil {
		return 0, false
	}
	_, isParam, ordinal, ok := l.method.HasVar(name)
	if !ok {
		return 0, false
	}
	if isParam {
		return 1 + ordinal, true
	}
	return 1 + len(l.method.Params) + ordinal, true
}

// fieldAddr computes the address of a field of `this` by name:
// `this.ptr + offset` via BINOP offset (§4.4).
func (l *lowering) fieldAddr(name string) Reg {
	offset, _ := l.class.FieldOffset(name)
	return l.loadWordAddr(Local(0), offset)
}

// loadWordAddr computes base+offset as a pointer register without loading
// through it.
func (l *lowering) loadWordAddr(base Reg, offset int) Reg {
	offReg := l.fresh()
	l.emit(Immed(offReg, int64(offset)))
	addr := l.fresh()
	l.emit(Binop(Offset, addr, base, offReg))
	return addr
}

// loadWord loads the word at base+offset.
func (l *lowering) loadWord(base Reg, offset int) Reg {
	addr := l.loadWordAddr(base, offset)
	dst := l.fresh()
	l.emit(Load(dst, addr))
	return dst
}

func (l *lowering) lowerNewArray(n *ast.NewArrayExpression) Reg {
	size := l.lowerExpr(n.Size)
	one := l.fresh()
	l.emit(Immed(one, 1))
	total := l.fresh()
	l.emit(Binop(Add, total, size, one))
	ptr := l.fresh()
	l.emit(Malloc(ptr, total))

	// Store the length at the leading header word (offset 0).
	addr := l.loadWordAddr(ptr, 0)
	l.emit(Store(addr, size))
	return ptr
}

func (l *lowering) lowerNewObject(n *ast.NewObjectExpression) Reg {
	class, ok := l.st.LookupClass(n.ClassName.Value)
	if !ok {
		class, _ = l.st.LookupClass(semantic.ObjectClassName)
	}

	size := int64(len(class.FieldLayout()) + 1) // +1 for the vtable header word
	sizeReg := l.fresh()
	l.emit(Immed(sizeReg, size))
	ptr := l.fresh()
	l.emit(Malloc(ptr, sizeReg))

	vtable := l.fresh()
	l.emit(Mov(vtable, Global(l.classVG[class])))
	addr := l.loadWordAddr(ptr, 0)
	l.emit(Store(addr, vtable))
	return ptr
}

func (l *lowering) lowerIndex(n *ast.IndexExpression) Reg {
	arr := l.lowerExpr(n.Array)
	idx := l.lowerExpr(n.Index)
	one := l.fresh()
	l.emit(Immed(one, 1))
	idxPlus1 := l.fresh()
	l.emit(Binop(Add, idxPlus1, idx, one))
	addr := l.fresh()
	l.emit(Binop(Offset, addr, arr, idxPlus1))
	dst := l.fresh()
	l.emit(Load(dst, addr))
	return dst
}

func (l *lowering) lowerBinary(n *ast.BinaryExpression) Reg {
	left := l.lowerExpr(n.Left)
	right := l.lowerExpr(n.Right)
	dst := l.fresh()
	l.emit(Binop(binOpFor(n.Operator), dst, left, right))
	return dst
}

func binOpFor(op string) BinOp {
	switch op {
	case "&&":
		return And
	case "<":
		return Lt
	case "+":
		return Add
	case "-":
		return Sub
	case "*":
		return Mul
	default:
		errors.Panic("ir: unknown binary operator %q", op)
		return Add
	}
}

// lowerCall lowers a method call per §4.4: PARAM the receiver and each
// argument, load the function pointer through the receiver's *runtime*
// vtable (dynamic dispatch) at the slot resolved from its *static* type
// (recorded by the type checker), CALL, then collect the return value.
func (l *lowering) lowerCall(n *ast.MethodCallExpression) Reg {
	recv := l.lowerExpr(n.Receiver)

	paramRun := 0
	l.emit(Param(recv))
	paramRun++
	for _, a := range n.Args {
		ar := l.lowerExpr(a)
		l.emit(Param(ar))
		paramRun++
	}
	if paramRun > l.b.MaxParams {
		l.b.MaxParams = paramRun
	}

	staticType, _ := l.st.ReceiverType(n)
	slot := 0
	if staticType.Class != nil {
		slot, _ = staticType.Class.MethodSlot(n.Method.Value)
	}

	vtable := l.loadWord(recv, 0)
	fn := l.loadWord(vtable, slot)
	l.emit(Call(fn))

	dst := l.fresh()
	l.emit(Mov(dst, Global(retGlobal)))
	return dst
}
