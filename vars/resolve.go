package vars

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/varsub/log"
)

var errNilScope = NewError("nil scope")

// Resolver substitutes variable references in strings.
//
// The zero value is ready to use and logs nothing.
type Resolver struct {
	log log.Logger
}

// ResolverOption configures a [Resolver].
type ResolverOption func(Resolver) Resolver

// WithLogger returns a [ResolverOption] that traces scanning and
// substitution to l.
func WithLogger(l log.Logger) ResolverOption {
	return func(r Resolver) Resolver {
		r.log = l

		return r
	}
}

// NewResolver returns a [Resolver] with the given options applied.
func NewResolver(opts ...ResolverOption) Resolver {
	var r Resolver

	for _, opt := range opts {
		if opt != nil {
			r = opt(r)
		}
	}

	return r
}

// Resolve replaces every reference in source with the value of the named
// variable in scope.
//
// A variable declared without a value resolves to the empty string. A name
// not bound in scope is an [ErrUndeclaredVariable] error if failOnUndeclared
// is set, otherwise the reference is kept verbatim. Scan errors are returned
// as is and no partial result is produced.
func (r Resolver) Resolve(
	source string,
	failOnUndeclared bool,
	scope Scope,
) (string, error) {
	if scope == nil {
		return "", ErrIllegalArgument.Wrap(errNilScope)
	}

	refs, err := Scan(source)
	if err != nil {
		r.log.Debug("scan failed", slog.Any("error", err))

		return "", err
	}

	r.log.Trace("scanned",
		slog.String("source", source),
		slog.Int("references", len(refs)),
	)

	if len(refs) == 0 {
		return source, nil
	}

	var (
		sb   strings.Builder
		last int
	)

	sb.Grow(len(source))

	for _, ref := range refs {
		s, err := r.ResolveVariableInScope(
			ref.Name, scope, failOnUndeclared, ref.Braces,
		)
		if err != nil {
			return "", err
		}

		sb.WriteString(source[last:ref.Start])
		sb.WriteString(s)

		last = ref.End + 1
	}

	sb.WriteString(source[last:])

	return sb.String(), nil
}

// ResolveVariableInScope returns the substitution for a single reference to
// name, following the rules of [Resolver.Resolve]. useBraces selects the
// verbatim form kept for unbound names.
func (r Resolver) ResolveVariableInScope(
	name string,
	scope Scope,
	failOnUndeclared, useBraces bool,
) (string, error) {
	if scope == nil {
		return "", ErrIllegalArgument.Wrap(errNilScope)
	}

	v := scope.Variable(name)
	if v == nil {
		if failOnUndeclared {
			r.log.Debug("undeclared variable", slog.String("name", name))

			return "", ErrUndeclaredVariable.Named(name)
		}

		r.log.Trace("unresolved", slog.String("name", name))

		return ResolveVariableInLine(name, nil, useBraces), nil
	}

	value := v.Get()
	if value == nil {
		r.log.Trace("undefined", slog.String("name", name))

		return "", nil
	}

	r.log.Trace("substituted", slog.String("name", name))

	return fmt.Sprint(value), nil
}

// ResolvePairs resolves source against a temporary scope declaring
// alternating name, value pairs. The first pair wins when a name repeats,
// and a trailing name without a value is declared undefined.
func (r Resolver) ResolvePairs(
	source string,
	failOnUndeclared bool,
	pairs ...any,
) (string, error) {
	scope := New()

	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return "", ErrIllegalArgument.Wrap(NewError(
				fmt.Sprintf("%v is supposed to be a string variable name", pairs[i]),
			))
		}

		if scope.Variable(name) != nil {
			continue
		}

		var value any
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}

		if _, err := scope.Declare(name, value); err != nil {
			return "", err
		}
	}

	return r.Resolve(source, failOnUndeclared, scope)
}

// ResolveMap resolves source leniently against the entries of values.
func (r Resolver) ResolveMap(
	source string,
	values map[string]string,
) (string, error) {
	scope := New()

	for name, value := range values {
		if _, err := scope.Declare(name, value); err != nil {
			return "", err
		}
	}

	return r.Resolve(source, false, scope)
}

// Resolve calls [Resolver.Resolve] on the zero [Resolver].
func Resolve(source string, failOnUndeclared bool, scope Scope) (string, error) {
	return Resolver{}.Resolve(source, failOnUndeclared, scope)
}

// ResolvePairs calls [Resolver.ResolvePairs] on the zero [Resolver].
func ResolvePairs(source string, failOnUndeclared bool, pairs ...any) (string, error) {
	return Resolver{}.ResolvePairs(source, failOnUndeclared, pairs...)
}

// ResolveMap calls [Resolver.ResolveMap] on the zero [Resolver].
func ResolveMap(source string, values map[string]string) (string, error) {
	return Resolver{}.ResolveMap(source, values)
}

// ResolveVariableInScope calls [Resolver.ResolveVariableInScope] on the zero
// [Resolver].
func ResolveVariableInScope(
	name string,
	scope Scope,
	failOnUndeclared, useBraces bool,
) (string, error) {
	return Resolver{}.ResolveVariableInScope(
		name, scope, failOnUndeclared, useBraces,
	)
}

// ResolveVariableInLine returns the string form of value, or the reference
// to name as it would be written in a template if value is nil.
func ResolveVariableInLine(name string, value any, useBraces bool) string {
	if value != nil {
		return fmt.Sprint(value)
	}

	if useBraces {
		return "${" + name + "}"
	}

	return "$" + name
}
