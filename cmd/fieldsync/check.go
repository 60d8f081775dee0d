package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fieldsync/cmd/fieldsync/options"
	"fieldsync/internal/config"
	"fieldsync/internal/diagnostic"
)

func newCheckCommand() *cobra.Command {
	opts := options.NewCheckOptions()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a synchronizer configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			return runCheck(opts, cmd.OutOrStdout())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

var errCheckFailed = errors.New("check failed")

func runCheck(opts *options.CheckOptions, out io.Writer) error {
	f, err := config.LoadFile(opts.Config)
	if err != nil {
		return err
	}

	doc, err := loadDocument(opts.Document)
	if err != nil {
		return err
	}

	diags := config.Validate(f, doc)
	p := newDiagnosticPrinter(out, opts.NoColor)

	for _, d := range diags.All() {
		p.print(d)
	}

	fmt.Fprintf(out, "%s: %d error(s), %d warning(s)\n", opts.Config, len(diags.Errors), len(diags.Warnings))

	if diags.HasErrors() {
		return fmt.Errorf("%w: %w", errCheckFailed, diags.Err())
	}

	if opts.Strict && len(diags.Warnings) > 0 {
		return fmt.Errorf("%w: %d warning(s) in strict mode", errCheckFailed, len(diags.Warnings))
	}

	return nil
}

type diagnosticPrinter struct {
	out    io.Writer
	colors map[diagnostic.Severity]*color.Color
}

func newDiagnosticPrinter(out io.Writer, noColor bool) *diagnosticPrinter {
	p := &diagnosticPrinter{
		out: out,
		colors: map[diagnostic.Severity]*color.Color{
			diagnostic.SeverityError:   color.New(color.FgRed, color.Bold),
			diagnostic.SeverityWarning: color.New(color.FgYellow),
			diagnostic.SeverityInfo:    color.New(color.FgCyan),
		},
	}

	if noColor {
		for _, c := range p.colors {
			c.DisableColor()
		}
	}

	return p
}

func (p *diagnosticPrinter) print(d diagnostic.Diagnostic) {
	p.colors[d.Severity].Fprintf(p.out, "%-7s", d.Severity)
	fmt.Fprintf(p.out, " %s\n", d)
}
