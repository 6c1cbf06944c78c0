package vars

import (
	"fmt"
	"log/slog"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// reservedName can never be declared.
const reservedName = "null"

// Variable is a named value cell obtained from a [Scope].
//
// A nil value means the variable is declared but undefined, which is
// distinct from not being declared at all.
type Variable interface {
	// Name returns the variable's name, fixed at declaration.
	Name() string
	// Type returns the declared type, or the dynamic type of the current
	// value if none was declared, or nil if neither is known.
	Type() reflect.Type
	// Get returns the current value.
	Get() any
	// Set replaces the current value and returns the previous one.
	Set(value any) (previous any, err error)
	// String returns "name=value".
	String() string
}

// ValidName reports why name cannot be declared, or nil if it can.
//
// A name is a non-empty sequence of letters, digits, '_', '-' and '.' that
// does not start with a digit and is not "null".
func ValidName(name string) error {
	switch {
	case name == "":
		return ErrIllegalName.Named(name).Wrap(errEmptyName)

	case name == reservedName:
		return ErrIllegalName.Named(name).Wrap(errReservedName)
	}

	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return ErrIllegalName.Named(name).Wrap(errLeadingDigit)
		}

		if r == utf8.RuneError || !ValidNameChar(r) {
			return ErrIllegalName.Named(name).Wrap(
				errInvalidChar.With(slog.String("char", string(r)), slog.Int("index", i)),
			)
		}
	}

	return nil
}

// ValidNameChar reports whether r may appear in a variable name.
func ValidNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '-' || r == '.'
}

// Terminator reports whether c ends an unbraced variable reference.
func Terminator(c byte) bool {
	switch c {
	case '}', ' ', '/', ':':
		return true
	default:
		return false
	}
}

// variable is the in-memory [Variable] owned by a [Memory] scope.
type variable struct {
	name  string
	typ   reflect.Type
	value any
}

func newVariable(name string, typ reflect.Type, value any) (*variable, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}

	if err := assignable(name, typ, value); err != nil {
		return nil, err
	}

	return &variable{name: name, typ: typ, value: value}, nil
}

func (v *variable) Name() string { return v.name }

func (v *variable) Type() reflect.Type {
	if v.typ != nil {
		return v.typ
	}

	if v.value != nil {
		return reflect.TypeOf(v.value)
	}

	return nil
}

func (v *variable) Get() any { return v.value }

func (v *variable) Set(value any) (any, error) {
	if err := assignable(v.name, v.typ, value); err != nil {
		return nil, err
	}

	prev := v.value
	v.value = value

	return prev, nil
}

func (v *variable) String() string { return format(v.name, v.value) }

// assignable reports an error if value cannot be held by a variable declared
// with type typ. A nil typ or nil value is always accepted.
func assignable(name string, typ reflect.Type, value any) error {
	if typ == nil || value == nil {
		return nil
	}

	if got := reflect.TypeOf(value); !got.AssignableTo(typ) {
		return ErrInvalidValueType.Named(name).With(
			slog.String("want", typ.String()),
			slog.String("got", got.String()),
		)
	}

	return nil
}

func format(name string, value any) string {
	return name + "=" + fmt.Sprint(value)
}
