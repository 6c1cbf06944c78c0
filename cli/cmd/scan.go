package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/varsub/log"
	"github.com/ardnew/varsub/pkg"
	"github.com/ardnew/varsub/vars"
)

// Scan output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

//nolint:gochecknoglobals
var (
	referenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Scan lists the variable references found in templates.
type Scan struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})" short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output" short:"i"`

	Templates []string `arg:"" help:"Templates to scan (default: lines of stdin)" name:"template" optional:""`
}

// scanResult is the structured form of one scanned template.
type scanResult struct {
	Template   string           `json:"template"        yaml:"template"`
	References []vars.Reference `json:"references"      yaml:"references"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run executes the scan command.
func (c *Scan) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	templates, err := readTemplates(ctx, c.Templates)
	if err != nil {
		return err
	}

	var errs pkg.Error

	results := make([]scanResult, 0, len(templates))

	for i, tmpl := range templates {
		refs, err := vars.Scan(tmpl)

		res := scanResult{Template: tmpl, References: refs}
		if res.References == nil {
			res.References = []vars.Reference{}
		}

		if err != nil {
			log.ErrorContext(ctx, "cannot scan template",
				slog.Int("template", i+1),
				slog.Any("error", err),
			)

			res.Error = err.Error()
			errs = errs.Wrap(err)
		}

		results = append(results, res)
	}

	out := streamsFrom(ctx).out

	switch c.Format {
	case FormatJSON:
		err = c.writeJSON(out, results)

	case FormatYAML:
		err = c.writeYAML(ctx, out, results)

	case FormatText, "":
		err = writeText(out, results)

	default:
		return pkg.ErrInvalidFormat.Wrapf(
			"%q (valid: %s)", c.Format,
			strings.Join([]string{FormatText, FormatJSON, FormatYAML}, ", "),
		)
	}

	if err != nil {
		return err
	}

	return errs.OrNil()
}

func (c *Scan) writeJSON(w io.Writer, results []scanResult) error {
	var (
		data []byte
		err  error
	)

	if c.Indent > 0 {
		data, err = json.MarshalIndent(results, "", strings.Repeat(" ", c.Indent))
	} else {
		data, err = json.Marshal(results)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (c *Scan) writeYAML(
	ctx context.Context,
	w io.Writer,
	results []scanResult,
) error {
	var opts []yaml.EncodeOption
	if c.Indent > 0 {
		opts = append(opts, yaml.Indent(c.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, results, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if _, err := fmt.Fprint(w, string(data)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// writeText prints each template with its references highlighted, followed
// by one line per reference. Templates that failed to scan are skipped.
func writeText(w io.Writer, results []scanResult) error {
	var sb strings.Builder

	for _, res := range results {
		if res.Error != "" {
			continue
		}

		sb.WriteString(highlight(res.Template, res.References))
		sb.WriteByte('\n')

		for _, ref := range res.References {
			sb.WriteString("  ")
			sb.WriteString(ref.Name)
			sb.WriteString(detailStyle.Render(
				" [" + strconv.Itoa(ref.Start) + ":" + strconv.Itoa(ref.End+1) + "]",
			))
			sb.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// highlight renders source with each reference styled.
func highlight(source string, refs []vars.Reference) string {
	var (
		sb   strings.Builder
		last int
	)

	for _, ref := range refs {
		sb.WriteString(source[last:ref.Start])
		sb.WriteString(referenceStyle.Render(source[ref.Start : ref.End+1]))

		last = ref.End + 1
	}

	sb.WriteString(source[last:])

	return sb.String()
}
