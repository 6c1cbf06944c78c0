package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/varsub/log"
	"github.com/ardnew/varsub/pkg"
	"github.com/ardnew/varsub/vars"
)

// maxSuggestions limits the names offered for an undeclared variable.
const maxSuggestions = 3

// Resolve substitutes variable references in templates and prints one result
// per template.
type Resolve struct {
	Strict    bool         `help:"Fail on references to undeclared variables"          short:"s"`
	Env       bool         `help:"Fall back to process environment variables"          short:"e"`
	Define    []Definition `help:"Declare variable NAME with VALUE"                    short:"D" placeholder:"NAME=VALUE"`
	Undefined []string     `help:"Declare variable NAME without a value"                         placeholder:"NAME"`
	File      string       `help:"YAML file mapping variable names to values (null declares without a value)" short:"f" type:"existingfile"`

	Templates []string `arg:"" help:"Templates to resolve (default: lines of stdin)" name:"template" optional:""`
}

// Run executes the resolve command.
//
// Every template is attempted. The returned error collects the failures of
// all templates that could not be resolved.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := scopeConfig{
		env:       r.Env,
		file:      r.File,
		undefined: r.Undefined,
		define:    r.Define,
	}.build(ctx)
	if err != nil {
		return err
	}

	templates, err := readTemplates(ctx, r.Templates)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "resolving",
		slog.Int("templates", len(templates)),
		slog.Int("declared", len(scope.Declared())),
		slog.Bool("strict", r.Strict),
		slog.Bool("env", r.Env),
	)

	resolver := vars.NewResolver(vars.WithLogger(
		log.Default().With(slog.String("command", "resolve")),
	))

	out := streamsFrom(ctx).out

	var errs pkg.Error

	for i, tmpl := range templates {
		s, err := resolver.Resolve(tmpl, r.Strict, scope)
		if err != nil {
			attrs := []slog.Attr{
				slog.Int("template", i+1),
				slog.Any("error", err),
			}

			if errors.Is(err, vars.ErrUndeclaredVariable) {
				name, _ := vars.NameOf(err)
				if s := suggest(name, knownNames(scope)); len(s) > 0 {
					attrs = append(attrs, slog.Any("did_you_mean", s))
				}
			}

			log.ErrorContext(ctx, "cannot resolve template", attrs...)

			errs = errs.Wrap(err)

			continue
		}

		if _, err := fmt.Fprintln(out, s); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return errs.OrNil()
}

// suggest returns up to [maxSuggestions] of names that fuzzily match name,
// best match first.
func suggest(name string, names []string) []string {
	if name == "" || len(names) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, names)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
