package types

// Field is a single own-field declaration: a name and its Type, in
// declaration order (declaration order becomes object layout order, §4.3).
type Field struct {
	Name string
	Type Type
}

// Class models one MiniJava class: its name, optional superclass link, and
// its own fields and methods in declaration order (§3).
type Class struct {
	Name  string
	Super *Class // nil for the synthetic Object root

	fields     []Field
	fieldIndex map[string]int

	methods     []*Method
	methodIndex map[string]int
}

// NewClass creates an empty Class. Use AddField/AddMethod to populate it
// during Symbol Builder pass 2.
func NewClass(name string, super *Class) *Class {
	return &Class{
		Name:        name,
		Super:       super,
		fieldIndex:  make(map[string]int),
		methodIndex: make(map[string]int),
	}
}

// AddField appends an own field. The caller (Symbol Builder) is responsible
// for rejecting duplicate names and collisions with inherited fields before
// calling this.
func (c *Class) AddField(name string, t Type) {
	c.fieldIndex[name] = len(c.fields)
	c.fields = append(c.fields, Field{Name: name, Type: t})
}

// AddMethod appends or overrides an own method. If a method of the same
// name already exists on this class, it is replaced in place (the Symbol
// Builder reports a method re-declared within one class body and does not
// call this for it).
func (c *Class) AddMethod(m *Method) {
	if idx, ok := c.methodIndex[m.Name]; ok {
		c.methods[idx] = m
		return
	}
	c.methodIndex[m.Name] = len(c.methods)
	c.methods = append(c.methods, m)
}

// OwnFields returns this class's own (non-inherited) fields in declaration order.
func (c *Class) OwnFields() []Field { return c.fields }

// OwnMethods returns this class's own methods (including overrides declared
// here) in declaration order.
func (c *Class) OwnMethods() []*Method { return c.methods }

// OwnField looks up a field declared directly on this class (not inherited).
func (c *Class) OwnField(name string) (Field, bool) {
	idx, ok := c.fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[idx], true
}

// OwnMethod looks up a method declared directly on this class.
func (c *Class) OwnMethod(name string) (*Method, bool) {
	idx, ok := c.methodIndex[name]
	if !ok {
		return nil, false
	}
	return c.methods[idx], true
}

// HasAnyVar searches own fields, then recursively up the inheritance chain
// (§4.2's identifier-use rule, field half).
func (c *Class) HasAnyVar(name string) (Type, bool) {
	if f, ok := c.OwnField(name); ok {
		return f.Type, true
	}
	if c.Super != nil {
		return c.Super.HasAnyVar(name)
	}
	return Type{}, false
}

// GetAnyMethod searches own methods, then recursively up the inheritance
// chain — the override at the most-derived class wins (§3).
func (c *Class) GetAnyMethod(name string) (*Method, bool) {
	if m, ok := c.OwnMethod(name); ok {
		return m, true
	}
	if c.Super != nil {
		return c.Super.GetAnyMethod(name)
	}
	return nil, false
}

// IsSubclassOf reports whether c is other, or a transitive subclass of
// other, walking Super links. Used by Type.CompatibleWith (§3).
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == other {
			return true
		}
	}
	return false
}

// Ancestors returns the chain from the Object root down to c, inclusive,
// root first. Object layout and method table layout (§4.3) are built by
// walking this order.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Super {
		chain = append(chain, cur)
	}
	// reverse in place: root first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// FieldLayout returns (inherited fields in declaration order) ++ (own
// fields in declaration order), the object word-offset assignment from
// §4.3: field f occupies offset len(layout up to and including f).
func (c *Class) FieldLayout() []Field {
	var layout []Field
	for _, cls := range c.Ancestors() {
		layout = append(layout, cls.fields...)
	}
	return layout
}

// FieldOffset returns the word offset of field name within an instance of
// c (0 is the leading vtable-pointer header word, so real fields start at
// offset 1), and whether the field exists at all.
func (c *Class) FieldOffset(name string) (int, bool) {
	for i, f := range c.FieldLayout() {
		if f.Name == name {
			return i + 1, true
		}
	}
	return 0, false
}

// MethodTableLayout returns the ordered list of method names forming this
// class's vtable: walk the inheritance chain root to leaf; a name already
// present keeps its original slot (the override replaces the implementation,
// not the position), and a new name gets the next slot (§4.3).
func (c *Class) MethodTableLayout() []string {
	var order []string
	seen := make(map[string]bool)
	for _, cls := range c.Ancestors() {
		for _, m := range cls.methods {
			if !seen[m.Name] {
				seen[m.Name] = true
				order = append(order, m.Name)
			}
		}
	}
	return order
}

// MethodSlot returns the vtable slot index for method name on class c, and
// whether that method exists anywhere in c's chain.
func (c *Class) MethodSlot(name string) (int, bool) {
	for i, n := range c.MethodTableLayout() {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
