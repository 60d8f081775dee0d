package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"fieldsync/internal/common"
	"fieldsync/internal/options"
)

var (
	fileKeys      = knownKeys(KeyVersion, KeyDelimiters, KeyField, KeyValue, KeyApplyTo, KeyVariables, KeyProgress)
	progressKeys  = knownKeys(KeyID, KeyColors, KeyBarColor, KeyEditable, KeyDisabled)
	targetKeys    = knownKeys(KeyUpdatable, KeyText, KeyPrefix, KeySuffix, KeyHTML, KeyHTMLValue, KeyMarkdown, KeySetField, KeySetter, KeyExpression, KeyVariable, KeyVariables)
	updatableKeys = knownKeys(KeyID, KeySelector, KeyName)
)

// knownKeys returns the lower-cased aliases of every alias list.
func knownKeys(lists ...string) map[string]struct{} {
	keys := map[string]struct{}{}

	for _, l := range lists {
		for _, k := range options.Keys(l) {
			keys[strings.ToLower(k)] = struct{}{}
		}
	}

	return keys
}

// unknownKeys returns the sorted keys of m that are not aliases in known.
func unknownKeys(m map[string]any, known map[string]struct{}) []string {
	var out []string

	for k := range m {
		if _, ok := known[strings.ToLower(k)]; !ok {
			out = append(out, k)
		}
	}

	slices.Sort(out)

	return out
}

// KnownFileKeys returns the canonical and alias keys accepted at file level.
func KnownFileKeys() []string {
	return sortedKeys(fileKeys)
}

// KnownTargetKeys returns the canonical and alias keys accepted in targets.
func KnownTargetKeys() []string {
	return sortedKeys(targetKeys)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}

// --- File ---

// UnmarshalYAML implements custom YAML unmarshaling for File.
// Every key may be given under any of its aliases.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	return f.fromMap(raw)
}

func (f *File) fromMap(m map[string]any) error {
	var (
		err  error
		errs []error
	)

	if f.Version, _, err = options.String(m, KeyVersion); err != nil {
		errs = append(errs, err)
	}

	if f.Field, _, err = options.String(m, KeyField); err != nil {
		errs = append(errs, err)
	}

	f.Value, _ = options.Value(m, KeyValue, false)

	if v, ok := options.Value(m, KeyDelimiters, true); ok {
		d, err := delimitersFrom(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("delimiters: %w", err))
		} else {
			f.Delimiters = d
		}
	}

	if v, ok := options.Value(m, KeyVariables, true); ok {
		if f.Variables, err = variablesFrom(v); err != nil {
			errs = append(errs, fmt.Errorf("variables: %w", err))
		}
	}

	if v, ok := options.Value(m, KeyApplyTo, true); ok {
		if f.Targets, err = targetsFrom(v); err != nil {
			errs = append(errs, err)
		}
	}

	if v, ok := options.Value(m, KeyProgress, true); ok {
		if f.Progress, err = progressFrom(v); err != nil {
			errs = append(errs, fmt.Errorf("progress: %w", err))
		}
	}

	f.unknown = unknownKeys(m, fileKeys)

	return errors.Join(errs...)
}

// --- Progress ---

// KnownProgressKeys returns the canonical and alias keys accepted in the
// progress section.
func KnownProgressKeys() []string {
	return sortedKeys(progressKeys)
}

func progressFrom(v any) (*Progress, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}

	var (
		p    Progress
		err  error
		errs []error
	)

	if p.ID, _, err = options.String(m, KeyID); err != nil {
		errs = append(errs, err)
	}

	if c, ok := options.Value(m, KeyColors, true); ok {
		switch x := c.(type) {
		case []any:
			p.Colors = x
		case string:
			for _, s := range strings.Split(x, ",") {
				p.Colors = append(p.Colors, strings.TrimSpace(s))
			}
		default:
			errs = append(errs, fmt.Errorf("colors: expected list, got %T", c))
		}
	}

	p.BarColor, _ = options.Value(m, KeyBarColor, true)

	if b, ok, err := options.Bool(m, KeyEditable); err != nil {
		errs = append(errs, err)
	} else if ok {
		p.Editable = &b
	}

	if p.Disabled, _, err = options.Bool(m, KeyDisabled); err != nil {
		errs = append(errs, err)
	}

	p.unknown = unknownKeys(m, progressKeys)

	return &p, errors.Join(errs...)
}

// --- Target ---

// UnmarshalYAML implements custom YAML unmarshaling for Target.
// Accepts an updatable string or an object of target options.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	target, err := targetFrom(raw)
	if err != nil {
		return err
	}

	*t = target

	return nil
}

func targetsFrom(v any) ([]Target, error) {
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}

	targets := make([]Target, 0, len(list))

	for i, x := range list {
		t, err := targetFrom(x)
		if err != nil {
			return nil, fmt.Errorf("applyTo[%d]: %w", i, err)
		}

		targets = append(targets, t)
	}

	return targets, nil
}

func targetFrom(v any) (Target, error) {
	switch x := v.(type) {
	case string:
		return Target{Updatable: Updatable{Ref: x}}, nil
	case map[string]any:
		var t Target

		err := t.fromMap(x)

		return t, err
	default:
		return Target{}, fmt.Errorf("expected string or object, got %T", v)
	}
}

func (t *Target) fromMap(m map[string]any) error {
	var errs []error

	str := func(dst *string, props string) {
		s, _, err := options.String(m, props)
		if err != nil {
			errs = append(errs, err)
			return
		}

		*dst = s
	}

	flag := func(dst *bool, props string) {
		b, _, err := options.Bool(m, props)
		if err != nil {
			errs = append(errs, err)
			return
		}

		*dst = b
	}

	if v, ok := options.Value(m, KeyUpdatable, true); ok {
		u, err := updatableFrom(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("updatable: %w", err))
		}

		t.Updatable = u
	}

	str(&t.Text, KeyText)
	str(&t.Prefix, KeyPrefix)
	str(&t.Suffix, KeySuffix)
	str(&t.SetField, KeySetField)
	str(&t.Setter, KeySetter)
	str(&t.Expression, KeyExpression)
	str(&t.Variable, KeyVariable)
	flag(&t.HTML, KeyHTML)
	flag(&t.HTMLValue, KeyHTMLValue)
	flag(&t.Markdown, KeyMarkdown)

	if v, ok := options.Value(m, KeyVariables, true); ok {
		vars, err := variablesFrom(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("variables: %w", err))
		}

		t.Variables = vars
	}

	t.unknown = unknownKeys(m, targetKeys)

	return errors.Join(errs...)
}

// --- Updatable ---

// UnmarshalYAML implements custom YAML unmarshaling for Updatable.
// Accepts:
//   - a string: "[[label]]" or an element id
//   - an object: {id: total}, {selector: "#total"}, {field: other}
//   - a list of the above
func (u *Updatable) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	v, err := updatableFrom(raw)
	if err != nil {
		return err
	}

	*u = v

	return nil
}

// MarshalYAML implements custom YAML marshaling for Updatable.
// Outputs the string form when only Ref is set.
func (u Updatable) MarshalYAML() (any, error) {
	switch {
	case u.List != nil:
		return u.List, nil
	case u.Ref != "":
		return u.Ref, nil
	default:
		type plain Updatable
		return plain(u), nil
	}
}

func updatableFrom(v any) (Updatable, error) {
	switch x := v.(type) {
	case nil:
		return Updatable{}, nil
	case string:
		return Updatable{Ref: x}, nil
	case []any:
		list := make([]Updatable, 0, len(x))

		for i, e := range x {
			u, err := updatableFrom(e)
			if err != nil {
				return Updatable{}, fmt.Errorf("[%d]: %w", i, err)
			}

			list = append(list, u)
		}

		return Updatable{List: list}, nil
	case map[string]any:
		var (
			u    Updatable
			errs []error
		)

		for _, f := range []struct {
			dst   *string
			props string
		}{{&u.ID, KeyID}, {&u.Selector, KeySelector}, {&u.Field, KeyName}} {
			s, _, err := options.String(x, f.props)
			if err != nil {
				errs = append(errs, err)
			}

			*f.dst = s
		}

		if unknown := unknownKeys(x, updatableKeys); len(unknown) > 0 {
			errs = append(errs, fmt.Errorf("unknown keys %s", strings.Join(unknown, ", ")))
		}

		return u, errors.Join(errs...)
	default:
		return Updatable{}, fmt.Errorf("expected string, list or object, got %T", v)
	}
}

// --- VariableMap ---

// UnmarshalYAML implements custom YAML unmarshaling for VariableMap.
// Accepts a mapping from name to descriptor, or a list of alternating
// names and descriptors, or a list of descriptors carrying a "name".
func (vm *VariableMap) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	v, err := variablesFrom(raw)
	if err != nil {
		return err
	}

	*vm = v

	return nil
}

func variablesFrom(v any) (VariableMap, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return VariableMap(x), nil
	case []any:
		out := make(VariableMap, len(x))
		if len(x) == 0 {
			return out, nil
		}

		if _, pairs := x[0].(string); pairs {
			if len(x)%2 != 0 {
				return nil, fmt.Errorf("name %v has no descriptor", x[len(x)-1])
			}

			for i := 0; i < len(x); i += 2 {
				name, ok := x[i].(string)
				if !ok {
					return nil, fmt.Errorf("variable name at position %d is %T, want string", i, x[i])
				}

				out[name] = x[i+1]
			}

			return out, nil
		}

		for i, e := range x {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("variable at position %d is %T, want object", i, e)
			}

			name, _ := m["name"].(string)
			if name == "" {
				return nil, fmt.Errorf("variable at position %d has no name", i)
			}

			out[name] = m
		}

		return out, nil
	default:
		return nil, fmt.Errorf("expected object or list, got %T", v)
	}
}

// --- Delimiters ---

// UnmarshalYAML implements custom YAML unmarshaling for Delimiters.
// Accepts {open, close}, a two-element list, or a string with the opener
// and closer separated by a space.
func (d *Delimiters) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	v, err := delimitersFrom(raw)
	if err != nil {
		return err
	}

	*d = *v

	return nil
}

func delimitersFrom(v any) (*Delimiters, error) {
	switch x := v.(type) {
	case string:
		parts := strings.Fields(x)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected opener and closer separated by a space, got %q", x)
		}

		open, closer := common.Pair(parts)

		return &Delimiters{Open: open, Close: closer}, nil
	case []any:
		if len(x) != 2 {
			return nil, fmt.Errorf("expected [open, close], got %d elements", len(x))
		}

		first, second := common.Pair(x)
		open, ok1 := first.(string)
		closer, ok2 := second.(string)

		if !ok1 || !ok2 {
			return nil, errors.New("expected [open, close] strings")
		}

		return &Delimiters{Open: open, Close: closer}, nil
	case map[string]any:
		open, _, err := options.String(x, KeyOpen)
		if err != nil {
			return nil, err
		}

		closer, _, err := options.String(x, KeyClose)
		if err != nil {
			return nil, err
		}

		return &Delimiters{Open: open, Close: closer}, nil
	default:
		return nil, fmt.Errorf("expected object, list or string, got %T", v)
	}
}
