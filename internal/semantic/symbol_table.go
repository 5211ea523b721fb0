// Package semantic implements the Symbol Builder (§4.1) and Type Checker
// (§4.2): it turns a parse tree into a populated SymbolTable, records the
// static receiver type of every method call in that table's side table, or
// accumulates the user errors that explain why it couldn't.
package semantic

import (
	"github.com/mjlang/mjc/internal/ast"
	"github.com/mjlang/mjc/internal/types"
)

// SymbolTable is the top-level class registry plus the method-call side
// table recording each call node's static receiver type, as specified in
// §3. It outlives the Type Checker and is read by IR Lowering.
type SymbolTable struct {
	classes map[string]*types.Class
	order   []string // class names in registration order, for deterministic iteration

	// MainClassName is the name of the program's mandatory main class.
	MainClassName string

	receiverTypes map[*ast.MethodCallExpression]types.Type
}

// NewSymbolTable creates an empty SymbolTable. The synthetic Object root is
// not added here; Build (§4.1 pass 1) injects it.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classes:       make(map[string]*types.Class),
		receiverTypes: make(map[*ast.MethodCallExpression]types.Type),
	}
}

// DefineClass registers a class by name. Callers must check IsDefined first
// to report DuplicateName themselves; DefineClass always overwrites.
func (st *SymbolTable) DefineClass(name string, c *types.Class) {
	if _, exists := st.classes[name]; !exists {
		st.order = append(st.order, name)
	}
	st.classes[name] = c
}

// IsDefined reports whether a class with this name is already registered.
func (st *SymbolTable) IsDefined(name string) bool {
	_, ok := st.classes[name]
	return ok
}

// LookupClass resolves a class name to its Class, if registered.
func (st *SymbolTable) LookupClass(name string) (*types.Class, bool) {
	c, ok := st.classes[name]
	return c, ok
}

// ClassNames returns every registered class name in registration order
// (Object root first, then the main class, then auxiliary classes in
// source order — §4.1).
func (st *SymbolTable) ClassNames() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// Classes returns every registered Class in registration order.
func (st *SymbolTable) Classes() []*types.Class {
	out := make([]*types.Class, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.classes[name])
	}
	return out
}

// SetReceiverType records the static type of a method call's receiver,
// keyed by the call node itself (invariant 2 in §8: every call node
// accepted by the type checker has an entry here).
func (st *SymbolTable) SetReceiverType(call *ast.MethodCallExpression, t types.Type) {
	st.receiverTypes[call] = t
}

// ReceiverType looks up the static receiver type recorded for a call node.
func (st *SymbolTable) ReceiverType(call *ast.MethodCallExpression) (types.Type, bool) {
	t, ok := st.receiverTypes[call]
	return t, ok
}
