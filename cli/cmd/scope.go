package cmd

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/varsub/env"
	"github.com/ardnew/varsub/pkg"
	"github.com/ardnew/varsub/vars"
)

// Definition is a NAME=VALUE pair given on the command line.
type Definition struct {
	Name  string
	Value string
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Definition) UnmarshalText(text []byte) error {
	name, value, ok := strings.Cut(string(text), "=")
	if !ok {
		return pkg.ErrInvalidDefinition.Wrapf("%q is not of the form NAME=VALUE", text)
	}

	if err := vars.ValidName(name); err != nil {
		return pkg.ErrInvalidDefinition.Wrap(err)
	}

	d.Name, d.Value = name, value

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Definition) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Definition) String() string { return d.Name + "=" + d.Value }

// declaration is one entry of a scope file; a nil value declares the name
// without a value.
type declaration struct {
	name  string
	value any
}

// readScopeFile decodes a YAML mapping of variable names to scalar values,
// preserving the order of the file.
func readScopeFile(ctx context.Context, path string) ([]declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	var doc yaml.MapSlice

	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, pkg.ErrDecodeScope.Wrapf("%s: %w", path, err)
	}

	decl := make([]declaration, 0, len(doc))

	for _, item := range doc {
		name, ok := item.Key.(string)
		if !ok {
			return nil, pkg.ErrDecodeScope.Wrapf(
				"%s: key %v is not a variable name", path, item.Key,
			)
		}

		switch item.Value.(type) {
		case yaml.MapSlice, map[string]any, map[any]any, []any:
			return nil, pkg.ErrDecodeScope.Wrapf(
				"%s: value of %q is not a scalar", path, name,
			)
		}

		decl = append(decl, declaration{name: name, value: item.Value})
	}

	return decl, nil
}

// scopeConfig describes where the variables of a resolve come from.
type scopeConfig struct {
	env       bool
	file      string
	undefined []string
	define    []Definition
}

// build declares every configured variable in a new scope. Later sources
// override earlier ones: the scope file, then undefined names, then
// definitions. With env set, the process environment is consulted for
// names not declared.
func (c scopeConfig) build(ctx context.Context) (*vars.Memory, error) {
	var opts []vars.Option
	if c.env {
		opts = append(opts, vars.WithEnclosing(vars.NewEnviron(env.Default())))
	}

	scope := vars.New(opts...)

	if c.file != "" {
		decl, err := readScopeFile(ctx, c.file)
		if err != nil {
			return nil, err
		}

		for _, d := range decl {
			if _, err := scope.Declare(d.name, d.value); err != nil {
				return nil, pkg.ErrDecodeScope.Wrapf("%s: %w", c.file, err)
			}
		}
	}

	for _, name := range c.undefined {
		if _, err := scope.Declare(name, nil); err != nil {
			return nil, pkg.ErrInvalidDefinition.Wrap(err)
		}
	}

	for _, d := range c.define {
		if _, err := scope.Declare(d.Name, d.Value); err != nil {
			return nil, pkg.ErrInvalidDefinition.Wrap(err)
		}
	}

	return scope, nil
}

// knownNames returns the sorted names visible in scope, including those of
// an enclosing environment that can list them.
func knownNames(scope *vars.Memory) []string {
	var names []string

	for _, v := range scope.Declared() {
		names = append(names, v.Name())
	}

	if e, ok := scope.Enclosing().(*vars.Environ); ok {
		if l, ok := e.Provider().(env.Lister); ok {
			names = append(names, l.Names()...)
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
}
