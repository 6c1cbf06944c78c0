package vars

import (
	"reflect"
	"slices"
)

// Scope is a namespace of declared variables used to resolve references.
type Scope interface {
	// Declare binds name to value, which may be nil (declared but undefined).
	Declare(name string, value any) (Variable, error)
	// DeclareType is like Declare but fixes the variable's type.
	// A nil typ behaves like Declare.
	DeclareType(name string, typ reflect.Type, value any) (Variable, error)
	// Undeclare removes a variable declared in this scope and returns it,
	// or returns nil if there is nothing to remove.
	Undeclare(name string) (Variable, error)
	// Variable looks up name, returning nil if it is not bound.
	Variable(name string) Variable
	// Declared returns the variables declared in this scope itself, in
	// declaration order.
	Declared() []Variable
}

// Memory is a [Scope] that owns its variables, optionally falling back to an
// enclosing scope for lookups.
//
// Memory is not safe for concurrent mutation.
type Memory struct {
	enclosing Scope
	order     []*variable
	index     map[string]*variable
}

// Option configures a [Memory] scope.
type Option func(*Memory)

// WithEnclosing sets the scope consulted by [Memory.Variable] for names not
// declared locally.
func WithEnclosing(s Scope) Option {
	return func(m *Memory) { m.enclosing = s }
}

// New returns an empty [Memory] scope.
func New(opts ...Option) *Memory {
	m := &Memory{index: make(map[string]*variable)}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Enclosing returns the enclosing scope, or nil.
func (m *Memory) Enclosing() Scope { return m.enclosing }

// Declare implements [Scope].
func (m *Memory) Declare(name string, value any) (Variable, error) {
	return m.DeclareType(name, nil, value)
}

// DeclareType implements [Scope]. Re-declaring a local name updates the
// existing variable's type and value, so earlier handles see the change.
func (m *Memory) DeclareType(
	name string,
	typ reflect.Type,
	value any,
) (Variable, error) {
	v, err := newVariable(name, typ, value)
	if err != nil {
		return nil, err
	}

	if m.index == nil {
		m.index = make(map[string]*variable)
	}

	if old, ok := m.index[name]; ok {
		old.typ, old.value = v.typ, v.value

		return old, nil
	}

	m.order = append(m.order, v)
	m.index[name] = v

	return v, nil
}

// Undeclare implements [Scope]. Names bound only in the enclosing scope are
// not touched.
func (m *Memory) Undeclare(name string) (Variable, error) {
	v, ok := m.index[name]
	if !ok {
		return nil, nil //nolint:nilnil
	}

	delete(m.index, name)
	m.order = slices.DeleteFunc(m.order, func(e *variable) bool { return e == v })

	return v, nil
}

// Variable implements [Scope].
func (m *Memory) Variable(name string) Variable {
	if v, ok := m.index[name]; ok {
		return v
	}

	if m.enclosing != nil {
		return m.enclosing.Variable(name)
	}

	return nil
}

// Declared implements [Scope].
func (m *Memory) Declared() []Variable {
	out := make([]Variable, len(m.order))
	for i, v := range m.order {
		out[i] = v
	}

	return out
}
