package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"fieldsync/cmd/fieldsync/options"
	"fieldsync/internal/config"
	"fieldsync/internal/synchronizer"
)

func newRunCommand() *cobra.Command {
	opts := options.NewRunOptions()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Synchronize the field into its targets and write the updated document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runSync(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

func runSync(ctx context.Context, opts *options.RunOptions, stdout, stderr io.Writer) error {
	if err := syncOnce(opts, stdout, stderr); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	paths := []string{opts.Config}
	if opts.Document != "" {
		paths = append(paths, opts.Document)
	}

	return watch(ctx, paths, func() {
		if err := syncOnce(opts, stdout, stderr); err != nil {
			klog.ErrorS(err, "Synchronization failed", "config", opts.Config)
		}
	})
}

func syncOnce(opts *options.RunOptions, stdout, stderr io.Writer) error {
	f, err := config.LoadFile(opts.Config)
	if err != nil {
		return err
	}

	switch {
	case opts.FieldID != "":
		f.Field, f.Value = opts.FieldID, nil
	case opts.Value != "":
		f.Field, f.Value = "", opts.Value
	}

	if opts.Dump {
		spew.Fdump(stderr, f)
	}

	doc, err := loadDocument(opts.Document)
	if err != nil {
		return err
	}

	if opts.SetValue != "" {
		el := doc.ElementByID(f.Field)
		if el == nil {
			return fmt.Errorf("set-value: field element %q not found", f.Field)
		}

		if err := el.SetFormValue(opts.SetValue); err != nil {
			return fmt.Errorf("set-value: %w", err)
		}
	}

	s, err := f.Build(doc, synchronizer.WithLogger(klog.NewKlogr().WithName("synchronizer")))
	if err != nil {
		return fmt.Errorf("failed to build synchronizer: %w", err)
	}

	if err := s.Process(); err != nil {
		return fmt.Errorf("synchronize: %w", err)
	}

	klog.V(2).InfoS("Synchronized", "config", opts.Config, "targets", len(f.Targets))

	if doc == nil {
		return nil
	}

	return writeDocument(doc, opts.Output, stdout)
}
