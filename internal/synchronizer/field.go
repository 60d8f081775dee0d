package synchronizer

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"fieldsync/internal/dom"
)

// Getter is a value source exposing GetValue. It has the highest priority.
type Getter interface {
	GetValue() any
}

// ValGetter is a value source exposing Val.
type ValGetter interface {
	Val() any
}

// ValueGetter is a value source exposing Value as an accessor.
type ValueGetter interface {
	Value() any
}

// Labeled is a field with a label relation, used by the "[[label]]" token.
type Labeled interface {
	Label() any
}

// FieldValueFunc returns the current value of a field.
type FieldValueFunc func(field any) any

// DefaultFieldValue resolves the value of field by probing, in this order:
// GetValue(), Val(), Value() and the value property. Callable methods always
// take precedence over property access.
func DefaultFieldValue(field any) any {
	switch f := field.(type) {
	case nil:
		return nil
	case Getter:
		return f.GetValue()
	case ValGetter:
		return f.Val()
	case ValueGetter:
		return f.Value()
	default:
		return propertyValue(field)
	}
}

// propertyValue reads the value property: the native value slot of input
// and textarea elements, the "value" key of a map, or an exported struct
// field named Value. Anything else has no value.
func propertyValue(field any) any {
	switch f := field.(type) {
	case *dom.Element:
		if v, ok := f.FormValue(); ok {
			return v
		}

		return nil
	case map[string]any:
		return f["value"]
	case map[string]string:
		if v, ok := f["value"]; ok {
			return v
		}

		return nil
	}

	rv := reflect.ValueOf(field)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	fv := rv.FieldByName("Value")
	if !fv.IsValid() || !fv.CanInterface() {
		return nil
	}

	return fv.Interface()
}

// Stringify returns the text form used for substitution and concatenation.
// nil becomes the empty string; floats use the shortest decimal form.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	default:
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
}
