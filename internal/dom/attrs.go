package dom

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"fieldsync/internal/common"
)

// ErrUnsupportedAttrValue is returned when an attribute value has a kind
// that cannot be written as text.
var ErrUnsupportedAttrValue = errors.New("unsupported attribute value")

var (
	lengthAttrRe  = regexp.MustCompile(`(?:width|height|margin(?:-(?:top|left|bottom|right))?|padding(?:-(?:top|left|bottom|right))?|top|left|bottom|right|radius|font-size)$`)
	angleAttrRe   = regexp.MustCompile(`(?i)rotation$`)
	numericTextRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// IsLengthAttr reports whether numeric values of the attribute are lengths
// in pixels.
func IsLengthAttr(name string) bool {
	return lengthAttrRe.MatchString(name)
}

// IsAngleAttr reports whether numeric values of the attribute are angles
// in degrees.
func IsAngleAttr(name string) bool {
	return angleAttrRe.MatchString(name)
}

// AttrValue converts v to the textual value of the named attribute.
// Numbers (and numeric strings) get a "px" suffix on length attributes and
// a "deg" suffix on rotation attributes.
func AttrValue(name string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		if numericTextRe.MatchString(x) {
			return withUnit(name, x), nil
		}

		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return withUnit(name, strconv.Itoa(x)), nil
	case int64:
		return withUnit(name, strconv.FormatInt(x, 10)), nil
	case float32:
		return withUnit(name, strconv.FormatFloat(float64(x), 'f', -1, 32)), nil
	case float64:
		return withUnit(name, strconv.FormatFloat(x, 'f', -1, 64)), nil
	default:
		return "", fmt.Errorf("%w: attribute %q: %T", ErrUnsupportedAttrValue, name, v)
	}
}

func withUnit(name, num string) string {
	switch {
	case IsLengthAttr(name):
		return num + "px"
	case IsAngleAttr(name):
		return num + "deg"
	default:
		return num
	}
}

// SetAttrs sets several attributes at once. Accepted forms:
//   - a single map[string]any
//   - a single [][2]any of name/value pairs
//   - alternating name, value arguments (a trailing odd name is ignored)
func SetAttrs(el *Element, attrs ...any) error {
	if common.IsSingle(attrs) {
		switch x := attrs[0].(type) {
		case map[string]any:
			for name, v := range x {
				if err := setAttr(el, name, v); err != nil {
					return err
				}
			}

			return nil
		case [][2]any:
			for _, pair := range x {
				name, ok := pair[0].(string)
				if !ok {
					return fmt.Errorf("attribute name must be a string, got %T", pair[0])
				}

				if err := setAttr(el, name, pair[1]); err != nil {
					return err
				}
			}

			return nil
		}
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		name, ok := attrs[i].(string)
		if !ok {
			return fmt.Errorf("attribute name must be a string, got %T", attrs[i])
		}

		if err := setAttr(el, name, attrs[i+1]); err != nil {
			return err
		}
	}

	return nil
}

func setAttr(el *Element, name string, v any) error {
	s, err := AttrValue(name, v)
	if err != nil {
		return err
	}

	el.SetAttr(name, s)

	return nil
}

// RemoveAttrs removes the named attributes.
func RemoveAttrs(el *Element, names ...string) {
	for _, name := range names {
		el.RemoveAttr(name)
	}
}

// Attrs returns the named attribute values keyed by name. Missing
// attributes map to an empty string.
func Attrs(el *Element, names ...string) map[string]string {
	result := make(map[string]string, len(names))
	for _, name := range names {
		result[name], _ = el.Attr(name)
	}

	return result
}

// AttrList returns the named attribute values in argument order.
func AttrList(el *Element, names ...string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		v, _ := el.Attr(name)
		result = append(result, v)
	}

	return result
}
