package options

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keys splits an alias list such as "applyTo | at" into trimmed keys.
func Keys(props string) []string {
	parts := strings.Split(props, "|")
	keys := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}

	return keys
}

// Coalesce returns the first non-nil value of m among keys, or def.
func Coalesce(m map[string]any, keys []string, def any) any {
	for _, k := range keys {
		if v := m[k]; v != nil {
			return v
		}
	}

	return def
}

// Value returns the first non-nil value of m among the aliases in props.
// For every alias the exact key is tried, then the key with its first
// letter case toggled. With lower set, the lower-case key and its
// capitalized form are tried as well.
func Value(m map[string]any, props string, lower bool) (any, bool) {
	for _, p := range Keys(props) {
		for _, k := range variants(p, lower) {
			if v := m[k]; v != nil {
				return v, true
			}
		}
	}

	return nil, false
}

// Key returns the key of m that Value would read for props.
func Key(m map[string]any, props string, lower bool) (string, bool) {
	for _, p := range Keys(props) {
		for _, k := range variants(p, lower) {
			if m[k] != nil {
				return k, true
			}
		}
	}

	return "", false
}

func variants(p string, lower bool) []string {
	keys := []string{p, toggleFirst(p)}
	if !lower {
		return keys
	}

	l := strings.ToLower(p)
	if l != p {
		keys = append(keys, l)
	}

	if c := upperFirst(l); c != p {
		keys = append(keys, c)
	}

	return keys
}

func toggleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	if unicode.IsUpper(r) {
		return string(unicode.ToLower(r)) + s[size:]
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// String returns the aliased value as a string, looking keys up like
// Value with lower-case variants. Numbers and booleans are formatted; other
// kinds are an error.
func String(m map[string]any, props string) (string, bool, error) {
	v, ok := Value(m, props, true)
	if !ok {
		return "", false, nil
	}

	switch x := v.(type) {
	case string:
		return x, true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	case int:
		return strconv.Itoa(x), true, nil
	case int64:
		return strconv.FormatInt(x, 10), true, nil
	case uint64:
		return strconv.FormatUint(x, 10), true, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true, nil
	default:
		return "", true, fmt.Errorf("%s: want a string, got %T", props, v)
	}
}

// Bool returns the aliased value as a boolean. Strings accepted by
// strconv.ParseBool plus "yes", "no", "on" and "off" are converted.
func Bool(m map[string]any, props string) (bool, bool, error) {
	v, ok := Value(m, props, true)
	if !ok {
		return false, false, nil
	}

	switch x := v.(type) {
	case bool:
		return x, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "on":
			return true, true, nil
		case "no", "off":
			return false, true, nil
		}

		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, true, fmt.Errorf("%s: %w", props, err)
		}

		return b, true, nil
	default:
		return false, true, fmt.Errorf("%s: want a boolean, got %T", props, v)
	}
}

// Float returns the aliased value as a float64. Integers and numeric
// strings are converted.
func Float(m map[string]any, props string) (float64, bool, error) {
	v, ok := Value(m, props, true)
	if !ok {
		return 0, false, nil
	}

	f, err := ToFloat(v)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", props, err)
	}

	return f, true, nil
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("want a number, got %q", x)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("want a number, got %T", v)
	}
}
