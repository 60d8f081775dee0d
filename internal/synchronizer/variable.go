package synchronizer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"fieldsync/internal/match"
)

//go:generate go tool stringer -type=VariableKind -trimprefix=Variable -output=variablekind_string.go

// VariableKind tags a normalized variable descriptor.
type VariableKind int

const (
	// VariableValue wraps a literal (or a callable producing one).
	VariableValue VariableKind = iota
	// VariableExpression wraps a formula source. Evaluation is not supported.
	VariableExpression
	// VariableReference names another variable to resolve.
	VariableReference
)

// ParseVariableKind parses the textual kind used in configuration files.
func ParseVariableKind(s string) (VariableKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "value":
		return VariableValue, nil
	case "expression":
		return VariableExpression, nil
	case "reference", "ref":
		return VariableReference, nil
	default:
		return 0, fmt.Errorf("%w: unknown variable type %q", ErrInvalidArgument, s)
	}
}

// Variable is a normalized named value descriptor. Exactly one of Value,
// Expression and Reference is meaningful, as selected by Kind.
type Variable struct {
	Name       string
	Kind       VariableKind
	Value      any
	Expression string
	Reference  string
	// Operator marks operator-based descriptors, which cannot be resolved.
	Operator string
}

// ValueOf returns a value variable wrapping v.
func ValueOf(v any) *Variable {
	return &Variable{Kind: VariableValue, Value: v}
}

// ExpressionOf returns an expression variable.
func ExpressionOf(expr string) *Variable {
	return &Variable{Kind: VariableExpression, Expression: expr}
}

// ReferenceTo returns a variable resolving to the variable called name.
func ReferenceTo(name string) *Variable {
	return &Variable{Kind: VariableReference, Reference: name}
}

// Variables maps names to variable descriptors. Values may be raw literals,
// map descriptors, capability objects or *Variable.
type Variables map[string]any

// Names returns the sorted variable names.
func (vs Variables) Names() []string {
	return slices.Sorted(maps.Keys(vs))
}

// NormalizeVariable classifies a raw descriptor into a *Variable:
//   - nil, strings, numbers, booleans and functions become value variables
//   - a map without "value" but with "expression" becomes an expression
//   - a map without "value" and "expression" becomes a reference to its
//     "reference" or "ref" entry, or to a "name" other than its own
//   - a map with "value" and no "type" is a value variable, or an expression
//     when it also has "expression"
func NormalizeVariable(name string, x any) (*Variable, error) {
	switch v := x.(type) {
	case *Variable:
		if v == nil {
			return &Variable{Name: name, Kind: VariableValue}, nil
		}

		out := *v
		if out.Name == "" {
			out.Name = name
		}

		return &out, nil
	case Variable:
		if v.Name == "" {
			v.Name = name
		}

		return &v, nil
	case map[string]any:
		return variableFromMap(name, v)
	default:
		return &Variable{Name: name, Kind: VariableValue, Value: x}, nil
	}
}

func variableFromMap(name string, m map[string]any) (*Variable, error) {
	v := &Variable{Name: name}
	if n, ok := m["name"].(string); ok && n != "" && name == "" {
		v.Name = n
	}

	if op, ok := m["operator"]; ok && op != nil {
		v.Operator = Stringify(op)
	}

	for _, k := range []string{"getValue", "value", "val"} {
		if f := m[k]; callable(f) {
			v.Kind = VariableValue
			v.Value = f

			return v, nil
		}
	}

	expr, _ := m["expression"].(string)
	value, hasValue := m["value"]

	if !hasValue {
		if expr != "" {
			v.Kind = VariableExpression
			v.Expression = expr

			return v, nil
		}

		v.Kind = VariableReference
		v.Reference = firstString(m, "reference", "ref")

		// "name" only names the target when it is not the variable's own name.
		if n, _ := m["name"].(string); v.Reference == "" && n != v.Name {
			v.Reference = n
		}

		return v, nil
	}

	if t, ok := m["type"].(string); ok && t != "" {
		kind, err := ParseVariableKind(t)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}

		v.Kind = kind

		switch kind {
		case VariableExpression:
			v.Expression = Stringify(value)
			if expr != "" {
				v.Expression = expr
			}
		case VariableReference:
			v.Reference = Stringify(value)
		default:
			v.Value = value
		}

		return v, nil
	}

	if expr != "" {
		v.Kind = VariableExpression
		v.Expression = expr

		return v, nil
	}

	v.Kind = VariableValue
	v.Value = value

	return v, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}

	return ""
}

// NormalizeVariables normalizes every descriptor of vs into a new map.
func NormalizeVariables(vs Variables) (Variables, error) {
	out := make(Variables, len(vs))

	for name, x := range vs {
		v, err := NormalizeVariable(name, x)
		if err != nil {
			return nil, err
		}

		out[name] = v
	}

	return out, nil
}

// variablesFromList builds a normalized map from either alternating
// name/descriptor pairs or descriptors carrying their own name.
func variablesFromList(list []any) (Variables, error) {
	out := make(Variables, len(list))
	if len(list) == 0 {
		return out, nil
	}

	if _, pairs := list[0].(string); pairs {
		for i := 0; i+1 < len(list); i += 2 {
			name, ok := list[i].(string)
			if !ok {
				return nil, fmt.Errorf("%w: variable name at position %d is %T, want string",
					ErrInvalidArgument, i, list[i])
			}

			v, err := NormalizeVariable(name, list[i+1])
			if err != nil {
				return nil, err
			}

			out[name] = v
		}

		return out, nil
	}

	for i, x := range list {
		name := descriptorName(x)
		if name == "" {
			return nil, fmt.Errorf("%w: variable descriptor at position %d has no name",
				ErrInvalidArgument, i)
		}

		v, err := NormalizeVariable(name, x)
		if err != nil {
			return nil, err
		}

		out[name] = v
	}

	return out, nil
}

func descriptorName(x any) string {
	switch v := x.(type) {
	case *Variable:
		if v != nil {
			return v.Name
		}
	case Variable:
		return v.Name
	case map[string]any:
		s, _ := v["name"].(string)
		return s
	}

	return ""
}

// mergeVariables overlays local on global into a new map. Local keys win.
func mergeVariables(global, local Variables) Variables {
	if len(local) == 0 {
		return global
	}

	if len(global) == 0 {
		return local
	}

	merged := maps.Clone(global)
	maps.Copy(merged, local)

	return merged
}

// variableResolver substitutes placeholder names during one render.
type variableResolver struct {
	vars       Variables
	field      any
	fieldValue FieldValueFunc
}

// substitute resolves a placeholder name to its text: "this" is the field
// value, anything else a variable of the merged map.
func (r *variableResolver) substitute(name string) (string, error) {
	v, err := r.lookup(name, nil)
	if err != nil {
		return "", err
	}

	return Stringify(v), nil
}

func (r *variableResolver) lookup(name string, visiting map[string]bool) (any, error) {
	if name == "this" {
		return r.fieldValue(r.field), nil
	}

	v, ok := r.vars[name]
	if !ok {
		if s, found := match.Suggest(name, r.vars.Names()); found {
			return nil, fmt.Errorf("%w: variable %q (did you mean %q?)", ErrNotFound, name, s)
		}

		return nil, fmt.Errorf("%w: variable %q", ErrNotFound, name)
	}

	if visiting[name] {
		return nil, fmt.Errorf("%w: variable %q references itself", ErrInvalidArgument, name)
	}

	if visiting == nil {
		visiting = map[string]bool{}
	}

	visiting[name] = true
	defer delete(visiting, name)

	return r.resolve(v, visiting)
}

// resolve implements the substitution order for a descriptor v:
// GetValue(), Value(), Val(), operator (unsupported), own value, v itself.
func (r *variableResolver) resolve(v any, visiting map[string]bool) (any, error) {
	switch x := v.(type) {
	case Getter:
		return x.GetValue(), nil
	case ValueGetter:
		return x.Value(), nil
	case ValGetter:
		return x.Val(), nil
	case *Variable:
		if x == nil {
			return nil, nil
		}

		return r.resolveVariable(x, visiting)
	case Variable:
		return r.resolveVariable(&x, visiting)
	case map[string]any:
		for _, k := range []string{"getValue", "value", "val"} {
			if out, ok := call(x[k]); ok {
				return out, nil
			}
		}

		if op, ok := x["operator"]; ok && op != nil {
			return nil, fmt.Errorf("%w: operator %v", ErrNotYetSupported, op)
		}

		if val, ok := x["value"]; ok {
			return val, nil
		}

		return x, nil
	case func() any:
		return x(), nil
	default:
		return v, nil
	}
}

func (r *variableResolver) resolveVariable(v *Variable, visiting map[string]bool) (any, error) {
	if v.Kind == VariableValue {
		if out, ok := call(v.Value); ok {
			return out, nil
		}
	}

	if v.Operator != "" {
		return nil, fmt.Errorf("%w: operator %q in variable %q", ErrNotYetSupported, v.Operator, v.Name)
	}

	switch v.Kind {
	case VariableExpression:
		return nil, fmt.Errorf("%w: expression %q in variable %q", ErrNotYetSupported, v.Expression, v.Name)
	case VariableReference:
		if v.Reference == "" {
			return nil, fmt.Errorf("%w: variable %q references no name", ErrInvalidArgument, v.Name)
		}

		return r.lookup(v.Reference, visiting)
	default:
		return v.Value, nil
	}
}

func callable(v any) bool {
	switch v.(type) {
	case Getter, ValueGetter, ValGetter, func() any:
		return true
	default:
		return false
	}
}

// call reports whether v is callable and, if so, its result.
func call(v any) (any, bool) {
	switch x := v.(type) {
	case Getter:
		return x.GetValue(), true
	case ValueGetter:
		return x.Value(), true
	case ValGetter:
		return x.Val(), true
	case func() any:
		return x(), true
	default:
		return nil, false
	}
}
