package options

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOptions_Flags(t *testing.T) {
	o := NewRunOptions()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"-c", "sync.yaml", "-d", "page.html", "--field-id", "amount", "-w", "-o", "out.html"}))
	assert.Equal(t, "sync.yaml", o.Config)
	assert.Equal(t, "page.html", o.Document)
	assert.Equal(t, "amount", o.FieldID)
	assert.Equal(t, "out.html", o.Output)
	assert.True(t, o.Watch)
	require.NoError(t, o.Validate())
}

func TestRunOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    RunOptions
		wantErr string
	}{
		{name: "ok", opts: RunOptions{Config: "c"}},
		{name: "no config", opts: RunOptions{}, wantErr: "config is required"},
		{name: "field and value", opts: RunOptions{Config: "c", FieldID: "f", Value: "v"}, wantErr: "mutually exclusive"},
		{name: "set value with literal", opts: RunOptions{Config: "c", SetValue: "1", Value: "v"}, wantErr: "set-value"},
		{name: "watch into document", opts: RunOptions{Config: "c", Watch: true, Document: "p", Output: "p"}, wantErr: "overwrite"},
		{name: "watch into relative document", opts: RunOptions{Config: "c", Watch: true, Document: "page.html", Output: "./page.html"}, wantErr: "overwrite"},
		{name: "watch into unclean document", opts: RunOptions{Config: "c", Watch: true, Document: "dir/../page.html", Output: "page.html"}, wantErr: "overwrite"},
		{name: "watch into config", opts: RunOptions{Config: "sync.yaml", Watch: true, Output: "./sync.yaml"}, wantErr: "overwrite"},
		{name: "watch into other file", opts: RunOptions{Config: "c", Watch: true, Document: "page.html", Output: "out/page.html"}},
		{name: "watch to stdout", opts: RunOptions{Config: "c", Watch: true, Output: "-"}, wantErr: "watch requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCheckOptions_Validate(t *testing.T) {
	require.Error(t, NewCheckOptions().Validate())
	require.NoError(t, (&CheckOptions{Config: "c"}).Validate())
}

func TestProgressOptions(t *testing.T) {
	o := NewProgressOptions()
	fs := pflag.NewFlagSet("progress", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"-d", "p.html", "--id", "p", "--value", "40%", "--colors", "red,green"}))
	assert.Equal(t, []string{"red", "green"}, o.Colors)
	require.NoError(t, o.Validate())

	err := (&ProgressOptions{Colors: []string{" "}}).Validate()
	require.ErrorContains(t, err, "document is required")
	require.ErrorContains(t, err, "id is required")
	require.ErrorContains(t, err, "colors[0] is empty")

	require.NoError(t, (&ProgressOptions{Document: "p.html", Config: "sync.yaml"}).Validate())
}

func TestIsStdout(t *testing.T) {
	assert.True(t, IsStdout(""))
	assert.True(t, IsStdout("-"))
	assert.False(t, IsStdout("out.html"))
}
