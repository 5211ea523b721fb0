package semantic

import (
	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/errors"
	"github.com/mjlang/mjc/internal/token"
	"github.com/mjlang/mjc/internal/types"
	"golang.org/x/text/cases"
)

// ObjectClassName is the synthetic root of the inheritance forest (§3).
const ObjectClassName = "Object"

// Build walks the parse tree once (in two passes) to populate a
// SymbolTable with every class, its inheritance link, its fields, and its
// methods, per §4.1. Errors are recorded on sink; Build never returns a nil
// SymbolTable even when errors occurred, so callers can keep going far
// enough to collect more diagnostics before die()-ing.
func Build(prog *ast.Program, sink *errors.Sink) *SymbolTable {
	st := NewSymbolTable()

	// Pass 1: register every class name so forward references resolve.
	// The Object root is injected synthetically; the main class is
	// registered first (with no superclass link of its own; an `extends`
	// clause naming it is not rejected), then auxiliary classes in source
	// order.
	st.DefineClass(ObjectClassName, types.NewClass(ObjectClassName, nil))

	if prog.MainClass != nil {
		name := prog.MainClass.Name.Value
		if st.IsDefined(name) {
			sink.Error(prog.MainClass.Pos(), "duplicate class name %q", name)
		}
		st.MainClassName = name
		st.DefineClass(name, types.NewClass(name, nil))
	}

	for _, cd := range prog.Classes {
		name := cd.Name.Value
		if st.IsDefined(name) {
			sink.Error(cd.Pos(), "duplicate class name %q", name)
			continue
		}
		st.DefineClass(name, types.NewClass(name, nil))
	}

	// Pass 2a: resolve `extends` clauses.
	for _, cd := range prog.Classes {
		c, _ := st.LookupClass(cd.Name.Value)
		if cd.Superclass == nil {
			c.Super = st.classes[ObjectClassName]
			continue
		}
		super, ok := st.LookupClass(cd.Superclass.Value)
		if !ok {
			sink.Error(cd.Superclass.Pos(), "class %q extends unknown class %q", cd.Name.Value, cd.Superclass.Value)
			c.Super = st.classes[ObjectClassName]
			continue
		}
		c.Super = super
	}

	checkCaseFoldCollisions(prog, sink)
	breakCycles(st, prog, sink)

	// Pass 2b: resolve field, parameter, local and return types. Classes
	// are processed in a topological (root-before-leaf) order so that
	// HasAnyVar/GetAnyMethod queries against an already-resolved
	// superclass see its complete field/method set.
	for _, cd := range topoOrder(prog) {
		resolveClassBody(st, cd, sink)
	}

	return st
}

// foldCaser normalizes class names before the fold-collision check below;
// MiniJava identifiers stay case-sensitive everywhere else.
var foldCaser = cases.Fold()

// checkCaseFoldCollisions reports a user error when two distinctly-spelled
// class names fold to the same identifier under Unicode case folding (e.g.
// "Widget" and "widget"). Each later declaration that collides is reported
// once, at its own position, against the first spelling seen.
func checkCaseFoldCollisions(prog *ast.Program, sink *errors.Sink) {
	type decl struct {
		name string
		pos  token.Position
	}
	var decls []decl
	if prog.MainClass != nil {
		decls = append(decls, decl{prog.MainClass.Name.Value, prog.MainClass.Pos()})
	}
	for _, cd := range prog.Classes {
		decls = append(decls, decl{cd.Name.Value, cd.Pos()})
	}

	seen := make(map[string]string) // folded form -> first original spelling
	for _, d := range decls {
		folded := foldCaser.String(d.name)
		if original, ok := seen[folded]; ok {
			if original != d.name {
				sink.Error(d.pos, "class name %q differs from %q only by letter case", d.name, original)
			}
			continue
		}
		seen[folded] = d.name
	}
}

// breakCycles detects cycles introduced by `extends` (forbidden by §3: "The
// inheritance graph is a forest rooted at Object") and severs them back to
// Object so that later passes (which walk Super chains) always terminate.
func breakCycles(st *SymbolTable, prog *ast.Program, sink *errors.Sink) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*types.Class]int)

	var visit func(c *types.Class) bool
	visit = func(c *types.Class) bool {
		color[c] = gray
		if c.Super != nil {
			switch color[c.Super] {
			case gray:
				// c's extends clause closes the cycle: sever it here.
				c.Super = st.classes[ObjectClassName]
				color[c] = black
				return true
			case white:
				if visit(c.Super) {
					color[c] = black
					return true
				}
			}
		}
		color[c] = black
		return false
	}

	for _, cd := range prog.Classes {
		c, _ := st.LookupClass(cd.Name.Value)
		if color[c] == white {
			if visit(c) {
				sink.Error(cd.Pos(), "cyclic inheritance involving class %q", cd.Name.Value)
			}
		}
	}
}

// topoOrder returns the auxiliary ClassDecls ordered so that every class
// appears after its superclass (stable otherwise, preserving source order
// among siblings).
func topoOrder(prog *ast.Program) []*ast.ClassDecl {
	byName := make(map[string]*ast.ClassDecl, len(prog.Classes))
	for _, cd := range prog.Classes {
		byName[cd.Name.Value] = cd
	}

	var order []*ast.ClassDecl
	done := make(map[string]bool)

	var emit func(cd *ast.ClassDecl)
	emit = func(cd *ast.ClassDecl) {
		if cd == nil || done[cd.Name.Value] {
			return
		}
		done[cd.Name.Value] = true // marked before recursing so a cyclic extends chain terminates
		if cd.Superclass != nil {
			emit(byName[cd.Superclass.Value])
		}
		order = append(order, cd)
	}

	for _, cd := range prog.Classes {
		emit(cd)
	}
	return order
}

func resolveClassBody(st *SymbolTable, cd *ast.ClassDecl, sink *errors.Sink) {
	c, _ := st.LookupClass(cd.Name.Value)

	for _, f := range cd.Fields {
		t, ok := resolveType(st, f.Type, sink)
		if !ok {
			continue
		}
		if _, declared := c.OwnField(f.Name.Value); declared {
			sink.Error(f.Pos(), "duplicate field %q in class %q", f.Name.Value, c.Name)
			continue
		}
		if c.Super != nil {
			if _, inherited := c.Super.HasAnyVar(f.Name.Value); inherited {
				sink.Error(f.Pos(), "field %q in class %q collides with an inherited field", f.Name.Value, c.Name)
				continue
			}
		}
		c.AddField(f.Name.Value, t)
	}

	for _, md := range cd.Methods {
		resolveMethod(st, c, md, sink)
	}
}

func resolveMethod(st *SymbolTable, c *types.Class, md *ast.MethodDecl, sink *errors.Sink) {
	ret, ok := resolveType(st, md.ReturnType, sink)
	if !ok {
		ret = types.ObjectOf(st.classes[ObjectClassName])
	}

	m := types.NewMethod(md.Name.Value, c, ret)

	seen := make(map[string]bool)
	for _, p := range md.Params {
		if seen[p.Name.Value] {
			sink.Error(p.Pos(), "duplicate parameter %q in method %q", p.Name.Value, m.QualifiedName())
			continue
		}
		seen[p.Name.Value] = true
		pt, ok := resolveType(st, p.Type, sink)
		if !ok {
			continue
		}
		m.AddParam(p.Name.Value, pt)
	}

	for _, l := range md.Locals {
		if seen[l.Name.Value] {
			sink.Error(l.Pos(), "local %q in method %q shadows a parameter", l.Name.Value, m.QualifiedName())
			continue
		}
		seen[l.Name.Value] = true
		lt, ok := resolveType(st, l.Type, sink)
		if !ok {
			continue
		}
		m.AddLocal(l.Name.Value, lt)
	}

	if c.Super != nil {
		if overridden, found := c.Super.GetAnyMethod(m.Name); found {
			if !overridden.SignatureCompatibleWith(m) {
				sink.Error(md.Pos(), "method %q overrides %q with an incompatible signature", m.QualifiedName(), overridden.QualifiedName())
			}
		}
	}

	if _, dup := c.OwnMethod(m.Name); dup {
		sink.Error(md.Pos(), "duplicate method %q in class %q", m.Name, c.Name)
		return
	}

	c.AddMethod(m)
}

// resolveType is the Type Extractor from §4.1: it maps a type-denoting
// parse node to a semantic Type, reporting UnknownType itself (rather than
// returning a null sentinel for the caller to report) since every call site
// would otherwise need to repeat the same diagnostic.
func resolveType(st *SymbolTable, tn ast.TypeNode, sink *errors.Sink) (types.Type, bool) {
	var result types.Type
	var ok bool
	ext := typeExtractor{
		onClass: func(name string, node *ast.ClassTypeNode) {
			class, found := st.LookupClass(name)
			if !found {
				sink.Error(node.Pos(), "unknown type %q", name)
				ok = false
				return
			}
			result = types.ObjectOf(class)
			ok = true
		},
		onOther: func(t types.Type) {
			result = t
			ok = true
		},
	}
	tn.Accept(&ext)
	return result, ok
}

// typeExtractor implements ast.TypeVisitor, turning each type denotation
// into a types.Type. Int/Boolean/IntArray are context-free; Class requires
// a SymbolTable lookup, handled by the caller-supplied onClass hook.
type typeExtractor struct {
	onClass func(name string, node *ast.ClassTypeNode)
	onOther func(t types.Type)
}

func (e *typeExtractor) VisitInt(*ast.IntTypeNode)         { e.onOther(types.Int) }
func (e *typeExtractor) VisitBoolean(*ast.BooleanTypeNode) { e.onOther(types.Boolean) }
func (e *typeExtractor) VisitIntArray(*ast.IntArrayTypeNode) { e.onOther(types.IntArray) }
func (e *typeExtractor) VisitClass(n *ast.ClassTypeNode)   { e.onClass(n.Name, n) }
