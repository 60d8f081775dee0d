package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDiagnostics_AddAndErr(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Err())

	d.AddInfo(CodeShadowedVariable, "target variable overrides global", "applyTo[0].variables.x")
	d.AddWarning(CodeNoOutput, "target writes nothing", "applyTo[1]")
	d.AddError(CodeUnknownVariable, `variable "curency" is not defined`, "applyTo[2].text", "currency")
	d.AddError(CodeNoUpdatable, "target has no updatable", "applyTo[3]")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 4)
	assert.Equal(t, SeverityError, d.All()[0].Severity)

	err := d.Err()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Equal(t,
		`applyTo[2].text: [unknown_variable] variable "curency" is not defined (did you mean "currency"?)`,
		errs[0].Error())
	assert.Equal(t, "applyTo[3]: [no_updatable] target has no updatable", errs[1].Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError(CodeInvalidValue, "a", "")
	b.AddWarning(CodeUnknownKey, "b", "x")
	b.AddInfo(CodeShadowedVariable, "c", "y")

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{name: "message only", d: Diagnostic{Message: "m"}, want: "m"},
		{name: "with code", d: Diagnostic{Code: "c", Message: "m"}, want: "[c] m"},
		{name: "with path", d: Diagnostic{Path: "p", Message: "m"}, want: "p: m"},
		{
			name: "with suggestions",
			d:    Diagnostic{Message: "m", Suggestions: []string{"a", "b"}},
			want: `m (did you mean "a" or "b"?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
