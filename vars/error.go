package vars

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package matches exactly one of these kinds
// with [errors.Is].
var (
	ErrIllegalArgument      = NewError("illegal argument")
	ErrIllegalName          = NewError("illegal variable name")
	ErrIllegalReference     = NewError("illegal variable reference")
	ErrUndeclaredVariable   = NewError("undeclared variable")
	ErrDuplicateDeclaration = NewError("duplicate declaration")
	ErrNotSupported         = NewError("not supported")
	ErrInvalidValueType     = NewError("invalid value type")
)

// Reasons wrapped by [ErrIllegalReference].
var (
	ErrEmptyReference  = NewError("empty variable reference")
	ErrUnbalancedClose = NewError("unbalanced closing '}'")
	ErrMisplacedOpen   = NewError("misplaced '{' in variable reference")
	ErrMisplacedSigil  = NewError("misplaced '$' in variable reference")
	ErrMissingClose    = NewError("missing closing '}' in variable reference")
	ErrUnbalancedOpen  = NewError("unbalanced '{' in variable reference")
)

// Reasons wrapped by [ErrIllegalName].
var (
	errEmptyName    = NewError("empty name")
	errReservedName = NewError("reserved name")
	errLeadingDigit = NewError("name starts with a digit")
	errInvalidChar  = NewError("invalid character")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap], [Error.With] or
// [Error.Named] keep the sentinel as their kind, so errors.Is matches them
// against it.
type Error struct {
	msg   string
	kind  *Error      // Sentinel this error derives from; nil for sentinels
	err   error       // Wrapped error (for errors.Unwrap)
	name  *string     // Variable name the error refers to, if any
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> "<name>": <err>"
	//   2. "<msg>: <err>"  // no name
	//   3. "<msg>"         // wrapped error is nil
	//   4. "<err>"         // base error message is empty
	part := make([]string, 0, 2)

	head := e.msg
	if e.name != nil {
		head = strings.TrimSpace(head + " " + strconv.Quote(*e.name))
	}

	if head != "" {
		part = append(part, head)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.name != nil {
		attrs = append(attrs, slog.String("name", *e.name))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// Named returns a copy of e that refers to the variable name.
func (e *Error) Named(name string) *Error {
	c := e.clone()
	c.name = &name

	return c
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

func (e *Error) clone() *Error {
	return &Error{
		msg:   e.msg,
		kind:  e.root(),
		err:   e.err,
		name:  e.name,
		attrs: e.attrs, // Share attrs
	}
}

// NameOf returns the variable name carried by the first [Error] in err's
// chain that has one.
func NameOf(err error) (string, bool) {
	for err != nil {
		var e *Error
		if errors.As(err, &e) {
			if e.name != nil {
				return *e.name, true
			}

			err = e.err

			continue
		}

		return "", false
	}

	return "", false
}
