package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"applyTo", "at", "elements"}, Keys(" applyTo | at|elements "))
	assert.Empty(t, Keys(""))
	assert.Equal(t, []string{"a"}, Keys("a||"))
}

func TestCoalesce(t *testing.T) {
	m := map[string]any{"a": nil, "b": 0, "c": "x"}

	assert.Equal(t, 0, Coalesce(m, []string{"a", "b", "c"}, "def"))
	assert.Equal(t, "x", Coalesce(m, []string{"missing", "c"}, "def"))
	assert.Equal(t, "def", Coalesce(m, []string{"a", "missing"}, "def"))
	assert.Nil(t, Coalesce(nil, []string{"a"}, nil))
}

func TestValue(t *testing.T) {
	tests := []struct {
		name   string
		m      map[string]any
		props  string
		lower  bool
		want   any
		wantOK bool
	}{
		{name: "exact", m: map[string]any{"applyTo": 1}, props: "applyTo|at", want: 1, wantOK: true},
		{name: "second alias", m: map[string]any{"at": 2}, props: "applyTo|at", want: 2, wantOK: true},
		{name: "alias order wins", m: map[string]any{"at": 2, "applyTo": 1}, props: "at|applyTo", want: 2, wantOK: true},
		{name: "toggled first letter", m: map[string]any{"ApplyTo": 3}, props: "applyTo", want: 3, wantOK: true},
		{name: "toggled to lower", m: map[string]any{"html": true}, props: "Html", want: true, wantOK: true},
		{name: "lower variant", m: map[string]any{"applyto": 4}, props: "applyTo", lower: true, want: 4, wantOK: true},
		{name: "lower variant disabled", m: map[string]any{"applyto": 4}, props: "applyTo"},
		{name: "capitalized lower variant", m: map[string]any{"Applyto": 5}, props: "applyTO", lower: true, want: 5, wantOK: true},
		{name: "nil skipped", m: map[string]any{"a": nil, "b": "x"}, props: "a|b", want: "x", wantOK: true},
		{name: "missing", m: map[string]any{}, props: "a|b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.m, tt.props, tt.lower)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKey(t *testing.T) {
	k, ok := Key(map[string]any{"Sufix": " USD"}, "suffix|sufix", false)
	require.True(t, ok)
	assert.Equal(t, "Sufix", k)

	_, ok = Key(map[string]any{}, "suffix", true)
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	m := map[string]any{"s": "x", "i": 3, "f": 1.5, "b": true, "l": []any{1}}

	for props, want := range map[string]string{"s": "x", "i": "3", "f": "1.5", "b": "true"} {
		got, ok, err := String(m, props)
		require.NoError(t, err, props)
		assert.True(t, ok, props)
		assert.Equal(t, want, got, props)
	}

	_, ok, err := String(m, "l")
	assert.True(t, ok)
	require.Error(t, err)

	_, ok, err = String(m, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	tests := []struct {
		name    string
		v       any
		want    bool
		wantErr bool
	}{
		{name: "bool", v: true, want: true},
		{name: "true string", v: "true", want: true},
		{name: "yes", v: "Yes", want: true},
		{name: "off", v: "off", want: false},
		{name: "zero", v: "0", want: false},
		{name: "garbage", v: "maybe", wantErr: true},
		{name: "number", v: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Bool(map[string]any{"html": tt.v}, "html|htmlText")
			assert.True(t, ok)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	m := map[string]any{"i": 2, "f": 2.5, "s": " 65 ", "bad": "x%", "list": []any{}}

	for props, want := range map[string]float64{"i": 2, "f": 2.5, "s": 65} {
		got, ok, err := Float(m, props)
		require.NoError(t, err, props)
		assert.True(t, ok, props)
		assert.InDelta(t, want, got, 1e-9, props)
	}

	_, _, err := Float(m, "bad")
	require.Error(t, err)

	_, _, err = Float(m, "list")
	require.Error(t, err)
}
