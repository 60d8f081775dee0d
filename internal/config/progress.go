package config

import (
	"fmt"

	"fieldsync/internal/progress"
)

// Intervals decodes the configured colors into bar color intervals.
func (p *Progress) Intervals() ([]progress.Interval, error) {
	return progress.IntervalsFrom(p.Colors)
}

// Options returns the progress options the section describes.
func (p *Progress) Options() ([]progress.Option, error) {
	intervals, err := p.Intervals()
	if err != nil {
		return nil, err
	}

	barColor, err := progress.ToColor(p.BarColor)
	if err != nil {
		return nil, fmt.Errorf("barColor: %w", err)
	}

	var opts []progress.Option

	if len(intervals) > 0 {
		opts = append(opts, progress.WithIntervals(intervals...))
	}

	if barColor != "" {
		opts = append(opts, progress.WithBarColor(barColor))
	}

	if p.Editable != nil {
		opts = append(opts, progress.WithEditable(*p.Editable))
	}

	if p.Disabled {
		opts = append(opts, progress.WithDisabled(true))
	}

	return opts, nil
}
