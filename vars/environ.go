package vars

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/ardnew/varsub/env"
)

//nolint:gochecknoglobals
var stringType = reflect.TypeFor[string]()

var errUndefinedEnv = NewError("cannot declare undefined environment variables")

// Environ is a [Scope] whose variables are environment variables read and
// written through an [env.Provider].
//
// Lookups always consult the provider, so changes made outside the scope are
// visible. Environ only tracks the names it declared itself, for
// [Environ.Declared] and duplicate detection. It never has an enclosing
// scope and is not safe for concurrent mutation.
type Environ struct {
	provider env.Provider
	order    []string
	tracked  map[string]*proxy
}

// NewEnviron returns an [Environ] backed by p, or by [env.Default] if p is
// nil.
func NewEnviron(p env.Provider) *Environ {
	if p == nil {
		p = env.Default()
	}

	return &Environ{provider: p, tracked: make(map[string]*proxy)}
}

// Provider returns the backing provider.
func (e *Environ) Provider() env.Provider { return e.provider }

// Declare implements [Scope].
func (e *Environ) Declare(name string, value any) (Variable, error) {
	return e.DeclareType(name, nil, value)
}

// DeclareType implements [Scope]. The value must be a non-nil string, the
// type (if given) must be string, and name must not already be declared in
// this scope. The value is exported to the environment.
func (e *Environ) DeclareType(
	name string,
	typ reflect.Type,
	value any,
) (Variable, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}

	if value == nil {
		return nil, ErrNotSupported.Wrap(errUndefinedEnv).
			With(slog.String("name", name))
	}

	if typ == nil {
		typ = reflect.TypeOf(value)
	}

	if typ != stringType {
		return nil, ErrNotSupported.Wrap(unsupportedType(typ)).
			With(slog.String("name", name))
	}

	s, ok := value.(string)
	if !ok {
		return nil, ErrInvalidValueType.Named(name).With(
			slog.String("want", stringType.String()),
			slog.String("got", reflect.TypeOf(value).String()),
		)
	}

	if e.tracked == nil {
		e.tracked = make(map[string]*proxy)
	}

	if _, ok := e.tracked[name]; ok {
		return nil, ErrDuplicateDeclaration.Named(name)
	}

	if err := e.provider.Export(name, s); err != nil {
		return nil, ErrNotSupported.Wrap(err).With(slog.String("name", name))
	}

	p := &proxy{scope: e, name: name}
	e.tracked[name] = p
	e.order = append(e.order, name)

	return p, nil
}

// Undeclare implements [Scope]. It unsets name in the environment and stops
// tracking it. A proxy obtained earlier keeps the value it had at this point.
// If the environment does not hold name, Undeclare returns nil.
func (e *Environ) Undeclare(name string) (Variable, error) {
	value, ok := e.provider.Getenv(name)

	p := e.tracked[name]

	if !ok {
		if p != nil {
			e.forget(name)
			p.detach(nil)
		}

		return nil, nil //nolint:nilnil
	}

	if err := e.provider.Unset(name); err != nil {
		return nil, ErrNotSupported.Wrap(err).With(slog.String("name", name))
	}

	if p != nil {
		e.forget(name)
	} else {
		p = &proxy{scope: e, name: name}
	}

	p.detach(value)

	return p, nil
}

// Variable implements [Scope]. It returns nil if the environment does not
// hold name, and the tracked proxy if this scope declared it.
func (e *Environ) Variable(name string) Variable {
	if _, ok := e.provider.Getenv(name); !ok {
		return nil
	}

	if p, ok := e.tracked[name]; ok {
		return p
	}

	return &proxy{scope: e, name: name}
}

// Declared implements [Scope].
func (e *Environ) Declared() []Variable {
	out := make([]Variable, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.tracked[name])
	}

	return out
}

func (e *Environ) forget(name string) {
	delete(e.tracked, name)
	e.order = slices.DeleteFunc(e.order, func(n string) bool { return n == name })
}

func unsupportedType(typ reflect.Type) *Error {
	return NewError("cannot declare " + typ.String() + " variables")
}

// proxy is the [Variable] view of one environment variable.
//
// Once detached by [Environ.Undeclare] it no longer touches the environment
// and holds the snapshot taken at that time.
type proxy struct {
	scope    *Environ
	name     string
	detached bool
	snapshot any
}

func (p *proxy) Name() string { return p.name }

func (p *proxy) Type() reflect.Type { return stringType }

func (p *proxy) Get() any {
	if p.detached {
		return p.snapshot
	}

	if v, ok := p.scope.provider.Getenv(p.name); ok {
		return v
	}

	return nil
}

func (p *proxy) Set(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return nil, ErrNotSupported.Wrap(errUndefinedEnv).
				With(slog.String("name", p.name))
		}

		return nil, ErrNotSupported.Wrap(unsupportedType(reflect.TypeOf(value))).
			With(slog.String("name", p.name))
	}

	prev := p.Get()

	if p.detached {
		p.snapshot = s

		return prev, nil
	}

	if err := p.scope.provider.Export(p.name, s); err != nil {
		return nil, ErrNotSupported.Wrap(err).With(slog.String("name", p.name))
	}

	return prev, nil
}

func (p *proxy) String() string { return format(p.name, p.Get()) }

func (p *proxy) detach(snapshot any) {
	p.detached = true
	p.snapshot = snapshot
}
