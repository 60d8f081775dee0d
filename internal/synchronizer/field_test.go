package synchronizer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldsync/internal/dom"
)

type allGetters struct{}

func (allGetters) GetValue() any { return "getValue" }
func (allGetters) Val() any      { return "val" }
func (allGetters) Value() any    { return "value" }

type valOnly struct{}

func (valOnly) Val() any { return "val" }

type valAndValue struct{}

func (valAndValue) Val() any   { return "val" }
func (valAndValue) Value() any { return "value" }

type valueOnly struct{ v any }

func (f valueOnly) Value() any { return f.v }

type getterOnly struct{ v any }

func (g getterOnly) GetValue() any { return g.v }

type withValueField struct {
	Value int
}

func TestDefaultFieldValue(t *testing.T) {
	doc, err := dom.ParseString(`<input id="i" value="typed"><span id="s">text</span>`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field any
		want  any
	}{
		{name: "nil", field: nil, want: nil},
		{name: "getter wins", field: allGetters{}, want: "getValue"},
		{name: "val", field: valOnly{}, want: "val"},
		{name: "val before value", field: valAndValue{}, want: "val"},
		{name: "value method", field: valueOnly{v: 3}, want: 3},
		{name: "map property", field: map[string]any{"value": 4}, want: 4},
		{name: "string map property", field: map[string]string{"value": "s"}, want: "s"},
		{name: "struct field", field: withValueField{Value: 5}, want: 5},
		{name: "struct pointer field", field: &withValueField{Value: 6}, want: 6},
		{name: "nil struct pointer", field: (*withValueField)(nil), want: nil},
		{name: "input element", field: doc.ElementByID("i"), want: "typed"},
		{name: "span element", field: doc.ElementByID("s"), want: nil},
		{name: "no property", field: 42, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFieldValue(tt.field))
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{name: "nil", v: nil, want: ""},
		{name: "string", v: "s", want: "s"},
		{name: "int", v: 42, want: "42"},
		{name: "negative", v: -3, want: "-3"},
		{name: "float", v: 1.5, want: "1.5"},
		{name: "whole float", v: 2.0, want: "2"},
		{name: "float32", v: float32(0.1), want: "0.1"},
		{name: "large float", v: 1e21, want: "1e+21"},
		{name: "nan", v: math.NaN(), want: "NaN"},
		{name: "infinity", v: math.Inf(-1), want: "-Infinity"},
		{name: "bool", v: true, want: "true"},
		{name: "error", v: errors.New("bad"), want: "bad"},
		{name: "stringer", v: 1500 * time.Millisecond, want: "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.v))
		})
	}
}
