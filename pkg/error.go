package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
//
// The command line uses it to collect the failures of independent inputs
// (one per template line) so that every line is attempted before the
// command reports.
type Error []error

// ErrReadInput is returned when reading templates or scope files fails.
//
// This error should be wrapped with the underlying I/O error.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrDecodeScope is returned when a scope file cannot be decoded.
var ErrDecodeScope = MakeErrorf("invalid scope file")

// ErrInvalidDefinition is returned when a command-line definition is not of
// the form name=value.
var ErrInvalidDefinition = MakeErrorf("invalid definition")

// ErrInvalidFormat is returned when an invalid output format is specified.
//
// This error should be wrapped with the invalid format and the valid ones.
var ErrInvalidFormat = MakeErrorf("invalid format")

// MakeError constructs an Error from the given errors.
// The first argument is the innermost error in the chain.
// Nil errors are skipped, so the result may be empty.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns all errors in the chain separated by ": ", from innermost
// to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is a sentinel Error whose base error is
// contained in the receiver, so that wrapped sentinels still match
// with [errors.Is].
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, err := range e {
		if err == t[0] {
			return true
		}
	}

	return false
}

// OrNil returns nil if the chain is empty and the receiver otherwise.
// It avoids returning a non-nil error interface holding an empty chain.
func (e Error) OrNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
