package config

import (
	"fmt"

	"fieldsync/internal/dom"
	"fieldsync/internal/synchronizer"
	"fieldsync/internal/textpattern"
)

// Build returns a Synchronizer configured from f. The document, when not
// nil, serves element id lookups and the Field element. opts are applied
// after the configuration and may override it.
func (f *File) Build(doc *dom.Document, opts ...synchronizer.Option) (*synchronizer.Synchronizer, error) {
	vars, err := synchronizer.NormalizeVariables(synchronizer.Variables(f.Variables))
	if err != nil {
		return nil, fmt.Errorf("variables: %w", err)
	}

	targets := make([]synchronizer.Target, 0, len(f.Targets))

	for i := range f.Targets {
		t, err := f.Targets[i].SyncTarget()
		if err != nil {
			return nil, fmt.Errorf("applyTo[%d]: %w", i, err)
		}

		targets = append(targets, t)
	}

	base := []synchronizer.Option{
		synchronizer.WithApplyTo(targets...),
		synchronizer.WithVariables(vars),
	}

	if f.Delimiters != nil {
		base = append(base, synchronizer.WithDelimiters(f.Delimiters.Pattern()))
	}

	if doc != nil {
		base = append(base, synchronizer.WithDocument(doc))
	}

	field, err := f.fieldOf(doc)
	if err != nil {
		return nil, err
	}

	if field != nil {
		base = append(base, synchronizer.WithField(field))
	}

	return synchronizer.New(append(base, opts...)...), nil
}

func (f *File) fieldOf(doc *dom.Document) (any, error) {
	if f.Field == "" {
		if f.Value == nil {
			return nil, nil
		}

		return map[string]any{"value": f.Value}, nil
	}

	el := doc.ElementByID(f.Field)
	if el == nil {
		return nil, fmt.Errorf("field: %w: element %q", synchronizer.ErrNotFound, f.Field)
	}

	return el, nil
}

// Pattern converts d to template delimiters.
func (d Delimiters) Pattern() textpattern.Delimiters {
	return textpattern.Delimiters{Open: d.Open, Close: d.Close}
}

// SyncTarget converts t to a synchronizer target.
func (t *Target) SyncTarget() (synchronizer.Target, error) {
	st := synchronizer.Target{
		Updatable: t.Updatable.SyncUpdatable(),
		Text:      t.Text,
		Prefix:    t.Prefix,
		Suffix:    t.Suffix,
		HTML:      t.HTML,
		HTMLValue: t.HTMLValue,
		Markdown:  t.Markdown,
		SetField:  t.SetField,
		Setter:    t.Setter,
	}

	if t.Expression != "" {
		st.Expression = t.Expression
	}

	if t.Variable != "" {
		st.Variable = t.Variable
	}

	if len(t.Variables) > 0 {
		vars, err := synchronizer.NormalizeVariables(synchronizer.Variables(t.Variables))
		if err != nil {
			return synchronizer.Target{}, fmt.Errorf("variables: %w", err)
		}

		st.Variables = vars
	}

	return st, nil
}

// SyncUpdatable converts u to a synchronizer updatable.
func (u Updatable) SyncUpdatable() synchronizer.Updatable {
	switch {
	case u.List != nil:
		list := make([]synchronizer.Updatable, 0, len(u.List))
		for _, e := range u.List {
			list = append(list, e.SyncUpdatable())
		}

		return synchronizer.List(list...)
	case u.Ref != "":
		return synchronizer.Ref(u.Ref)
	default:
		return synchronizer.Updatable{ID: u.ID, Selector: u.Selector, Field: u.Field}
	}
}
