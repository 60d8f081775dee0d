package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"fieldsync/cmd/fieldsync/options"
	"fieldsync/internal/common"
	"fieldsync/internal/config"
	"fieldsync/internal/dom"
	"fieldsync/internal/progress"
	"fieldsync/internal/synchronizer"
)

func newProgressCommand() *cobra.Command {
	opts := options.NewProgressOptions()

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Commit a value into a progress element, as if edited by a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			return runProgress(opts, cmd.OutOrStdout())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

func runProgress(opts *options.ProgressOptions, stdout io.Writer) error {
	doc, err := loadDocument(opts.Document)
	if err != nil {
		return err
	}

	logger := klog.NewKlogr()
	popts := []progress.Option{progress.WithLogger(logger.WithName("progress"))}
	id := opts.ID

	if opts.Config != "" {
		f, err := config.LoadFile(opts.Config)
		if err != nil {
			return err
		}

		if f.Progress != nil {
			section, err := f.Progress.Options()
			if err != nil {
				return fmt.Errorf("%s: progress: %w", opts.Config, err)
			}

			popts = append(popts, section...)

			if id == "" {
				id = f.Progress.ID
			}
		}

		s, err := f.Build(doc, synchronizer.WithLogger(logger.WithName("synchronizer")))
		if err != nil {
			return fmt.Errorf("failed to build synchronizer: %w", err)
		}

		popts = append(popts, progress.WithSynchronizer(s))
	}

	if id == "" {
		return errors.New("progress element id is required")
	}

	el := doc.ElementByID(id)
	if el == nil {
		return fmt.Errorf("progress element %q not found", id)
	}

	if len(opts.Colors) > 0 {
		intervals, err := progress.IntervalsFrom(common.Map(opts.Colors, func(c string) any { return c }))
		if err != nil {
			return fmt.Errorf("--colors: %w", err)
		}

		popts = append(popts, progress.WithIntervals(intervals...))
	}

	if opts.BarColor != "" {
		popts = append(popts, progress.WithBarColor(opts.BarColor))
	}

	p := progress.New(popts...)
	if err := p.Bind(el); err != nil {
		return err
	}

	klog.V(2).InfoS("Progress bound", "id", id, "attrs", dom.Attrs(el, "class", "data-value", "tabindex"))

	p.AddChangeListener(func(ev progress.ChangeEvent) {
		klog.V(2).InfoS("Progress changed", "id", id, "old", ev.OldValue, "new", ev.Value)
	})

	if opts.Value != "" {
		if err := commit(p, opts.Value); err != nil {
			return fmt.Errorf("progress %q: %w", id, err)
		}
	}

	return writeDocument(doc, opts.Output, stdout)
}

func commit(p *progress.Progress, text string) error {
	if err := p.Edit(); err != nil {
		return err
	}

	if err := p.SetEditText(text); err != nil {
		return err
	}

	if err := p.StopEditing(); err != nil {
		p.CancelEditing()
		return err
	}

	return nil
}
