package progress

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"fieldsync/internal/common"
	"fieldsync/internal/options"
)

// ErrIntColor reports numeric colors, which are not supported.
var ErrIntColor = errors.New("integer colors are not supported")

var numericColorRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// intervalColorKeys name the color of a range object.
const intervalColorKeys = "color|colour|barColor"

// Interval maps a value range to a bar color. A range bound is inclusive
// unless marked exclusive.
type Interval struct {
	Min          float64
	Max          float64
	ExclusiveMin bool
	ExclusiveMax bool
	Color        string

	// point is set for single-value intervals.
	point bool
}

// Contains reports whether v falls into the interval.
func (i Interval) Contains(v float64) bool {
	aboveMin := i.Min < v || (!i.ExclusiveMin && i.Min == v)
	belowMax := i.Max > v || (!i.ExclusiveMax && i.Max == v)

	return aboveMin && belowMax
}

// EvenIntervals splits [0, 100] evenly between colors.
func EvenIntervals(colors ...string) []Interval {
	n := len(colors)
	if n == 0 {
		return nil
	}

	fraction := math.Floor(100000/float64(n)) / 1000
	out := make([]Interval, 0, n)
	lo := 0.0

	for i, c := range colors {
		hi := lo + fraction
		if i == n-1 {
			hi = 100
		}

		out = append(out, Interval{Min: lo, Max: hi, ExclusiveMin: i > 0, Color: c})
		lo = hi
	}

	return out
}

// IntervalsFrom builds intervals from a loosely typed list: either plain
// colors, split evenly, or range objects with min|minimum|minValue|
// minimumValue and max|maximum|maxValue|maximumValue bounds, optional
// exclusiveMin and exclusiveMax flags, a single "value" point and a
// color|colour|barColor.
// Points sort first, then ranges by upper then lower bound.
func IntervalsFrom(list []any) ([]Interval, error) {
	if common.IsEmpty(list) {
		return nil, nil
	}

	if _, ranges := list[0].(map[string]any); !ranges {
		colors := make([]string, 0, len(list))

		for i, x := range list {
			c, err := ToColor(x)
			if err != nil {
				return nil, fmt.Errorf("colors[%d]: %w", i, err)
			}

			colors = append(colors, c)
		}

		return EvenIntervals(colors...), nil
	}

	out := make([]Interval, 0, len(list))

	for i, x := range list {
		m, ok := x.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("colors[%d]: expected a range object, got %T", i, x)
		}

		in, err := intervalFrom(m)
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}

		out = append(out, in)
	}

	SortIntervals(out)

	return out, nil
}

func intervalFrom(m map[string]any) (Interval, error) {
	in := Interval{Max: math.Inf(1)}

	c, err := ToColor(options.Coalesce(m, options.Keys(intervalColorKeys), nil))
	if err != nil {
		return in, err
	}

	in.Color = c

	if v, ok, err := options.Float(m, "value"); err != nil {
		return in, err
	} else if ok {
		in.Min, in.Max, in.point = v, v, true

		return in, nil
	}

	if v, ok, err := options.Float(m, "min|minimum|minValue|minimumValue"); err != nil {
		return in, err
	} else if ok {
		in.Min = v
	}

	if v, ok, err := options.Float(m, "max|maximum|maxValue|maximumValue"); err != nil {
		return in, err
	} else if ok {
		in.Max = v
	}

	if in.ExclusiveMin, _, err = options.Bool(m, "exclusiveMin"); err != nil {
		return in, err
	}

	if in.ExclusiveMax, _, err = options.Bool(m, "exclusiveMax"); err != nil {
		return in, err
	}

	return in, nil
}

// SortIntervals orders point intervals first by value, then ranges by upper
// bound and lower bound.
func SortIntervals(intervals []Interval) {
	slices.SortStableFunc(intervals, func(a, b Interval) int {
		switch {
		case a.point && b.point:
			return cmpFloat(a.Min, b.Min)
		case a.point:
			return -1
		case b.point:
			return 1
		}

		if c := cmpFloat(a.Max, b.Max); c != 0 {
			return c
		}

		return cmpFloat(a.Min, b.Min)
	})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToColor converts a color description to CSS: strings pass through,
// [r, g, b] and [r, g, b, a] lists become rgb()/rgba(), and objects with
// r/g/b[/a], red/green/blue[/alpha] or h/s/l[/a] components become
// rgb(), rgba(), hsl() or hsla(). nil is the empty color.
func ToColor(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		if numericColorRe.MatchString(x) {
			return "", fmt.Errorf("%w: %q", ErrIntColor, x)
		}

		return x, nil
	case []any:
		switch len(x) {
		case 3:
			return "rgb(" + joinAny(x) + ")", nil
		case 4:
			return "rgba(" + joinAny(x) + ")", nil
		default:
			return "", fmt.Errorf("incorrect array color of %d components", len(x))
		}
	case map[string]any:
		return objectColor(x)
	case int, int64, float64:
		return "", fmt.Errorf("%w: %v", ErrIntColor, x)
	default:
		return "", fmt.Errorf("unsupported color %T", v)
	}
}

func objectColor(m map[string]any) (string, error) {
	for _, names := range [][4]string{
		{"red", "green", "blue", "alpha"},
		{"r", "g", "b", "a"},
	} {
		if m[names[0]] == nil {
			continue
		}

		parts := []any{m[names[0]], m[names[1]], m[names[2]]}
		if a := m[names[3]]; a != nil {
			return "rgba(" + joinAny(append(parts, a)) + ")", nil
		}

		return "rgb(" + joinAny(parts) + ")", nil
	}

	if m["h"] != nil {
		parts := []any{m["h"], m["s"], m["l"]}
		if a, ok := options.Value(m, "alpha|a", false); ok {
			return "hsla(" + joinAny(append(parts, a)) + ")", nil
		}

		return "hsl(" + joinAny(parts) + ")", nil
	}

	return "", errors.New("color object has no red/r or h component")
}

func joinAny(xs []any) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		switch v := x.(type) {
		case float64:
			parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}

	return strings.Join(parts, ",")
}
