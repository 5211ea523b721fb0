package types

// Param is one parameter: a name and its Type. Its index in Method.Params
// is its ordinal, which becomes the calling-convention ABI slot (§4.4).
type Param struct {
	Name string
	Type Type
}

// Local is one method-local variable declaration.
type Local struct {
	Name string
	Type Type
}

// Method models one MiniJava method: its owning class, ordered parameter
// list, ordered local list, and declared return type (§3).
type Method struct {
	Name   string
	Owner  *Class
	Params []Param
	Locals []Local
	Return Type

	paramIndex map[string]int
	localIndex map[string]int
}

// NewMethod creates an empty Method owned by c.
func NewMethod(name string, owner *Class, ret Type) *Method {
	return &Method{
		Name:       name,
		Owner:      owner,
		Return:     ret,
		paramIndex: make(map[string]int),
		localIndex: make(map[string]int),
	}
}

// AddParam appends a parameter. The caller is responsible for rejecting a
// parameter name that collides with an earlier parameter or a declared
// local (§3: "parameter shadows local is disallowed at declaration time").
func (m *Method) AddParam(name string, t Type) {
	m.paramIndex[name] = len(m.Params)
	m.Params = append(m.Params, Param{Name: name, Type: t})
}

// AddLocal appends a local variable declaration.
func (m *Method) AddLocal(name string, t Type) {
	m.localIndex[name] = len(m.Locals)
	m.Locals = append(m.Locals, Local{Name: name, Type: t})
}

// HasVar searches parameters then locals, per §3. The bool result is
// whether to treat the slot as a parameter (true) or local (false); the int
// is the ordinal within that list.
func (m *Method) HasVar(name string) (t Type, isParam bool, ordinal int, ok bool) {
	if idx, found := m.paramIndex[name]; found {
		return m.Params[idx].Type, true, idx, true
	}
	if idx, found := m.localIndex[name]; found {
		return m.Locals[idx].Type, false, idx, true
	}
	return Type{}, false, 0, false
}

// QualifiedName returns "ClassName.MethodName".
func (m *Method) QualifiedName() string {
	owner := "?"
	if m.Owner != nil {
		owner = m.Owner.Name
	}
	return owner + "." + m.Name
}

// SignatureCompatibleWith reports whether overriding m with override is
// legal per §3: identical parameter list (same count, pairwise-equal
// types) and a compatible (covariant) return type.
func (m *Method) SignatureCompatibleWith(override *Method) bool {
	if len(m.Params) != len(override.Params) {
		return false
	}
	for i, p := range m.Params {
		if !p.Type.Equals(override.Params[i].Type) {
			return false
		}
	}
	return m.Return.CompatibleWith(override.Return) || m.Return.Equals(override.Return)
}
