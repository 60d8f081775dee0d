package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// RunOptions configures the run command.
type RunOptions struct {
	// Config is the synchronizer configuration file.
	Config string
	// Document is the HTML page the targets live in.
	Document string
	// Output receives the updated page; empty or "-" means stdout.
	Output string

	// FieldID overrides the field element of the configuration.
	FieldID string
	// Value overrides the field with a literal value.
	Value string
	// SetValue types a value into the field element before processing.
	SetValue string

	Watch bool
	Dump  bool
}

// NewRunOptions returns RunOptions with default values.
func NewRunOptions() *RunOptions {
	return &RunOptions{Output: "-"}
}

// AddFlags adds the run flags to fs.
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Config, "config", "c", o.Config,
		"Path to the synchronizer configuration file")
	fs.StringVarP(&o.Document, "document", "d", o.Document,
		"Path to the HTML document holding the field and its targets")
	fs.StringVarP(&o.Output, "output", "o", o.Output,
		"Where to write the updated document (- for stdout)")
	fs.StringVar(&o.FieldID, "field-id", o.FieldID,
		"Id of the field element, overriding the configuration")
	fs.StringVar(&o.Value, "value", o.Value,
		"Literal field value, overriding the configuration")
	fs.StringVar(&o.SetValue, "set-value", o.SetValue,
		"Value typed into the field element before synchronizing")
	fs.BoolVarP(&o.Watch, "watch", "w", o.Watch,
		"Synchronize again whenever the configuration or the document changes")
	fs.BoolVar(&o.Dump, "dump", o.Dump,
		"Dump the parsed configuration to stderr")
}

// Validate validates the run options.
func (o *RunOptions) Validate() error {
	var errs []error

	if o.Config == "" {
		errs = append(errs, errors.New("config is required"))
	}

	if o.FieldID != "" && o.Value != "" {
		errs = append(errs, errors.New("field-id and value are mutually exclusive"))
	}

	if o.SetValue != "" && o.Value != "" {
		errs = append(errs, errors.New("set-value needs a field element, not a literal value"))
	}

	if o.Watch && IsStdout(o.Output) {
		errs = append(errs, errors.New("watch requires an output file"))
	}

	if o.Watch && (samePath(o.Output, o.Document) || samePath(o.Output, o.Config)) {
		errs = append(errs, errors.New("watch cannot overwrite a watched file"))
	}

	return errors.Join(errs...)
}

// CheckOptions configures the check command.
type CheckOptions struct {
	Config   string
	Document string
	NoColor  bool
	// Strict turns warnings into a failure.
	Strict bool
}

// NewCheckOptions returns CheckOptions with default values.
func NewCheckOptions() *CheckOptions {
	return &CheckOptions{}
}

// AddFlags adds the check flags to fs.
func (o *CheckOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Config, "config", "c", o.Config,
		"Path to the synchronizer configuration file")
	fs.StringVarP(&o.Document, "document", "d", o.Document,
		"Optional HTML document used to check element ids")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor,
		"Disable colored output")
	fs.BoolVar(&o.Strict, "strict", o.Strict,
		"Fail on warnings as well as errors")
}

// Validate validates the check options.
func (o *CheckOptions) Validate() error {
	if o.Config == "" {
		return errors.New("config is required")
	}

	return nil
}

// ProgressOptions configures the progress command.
type ProgressOptions struct {
	Document string
	Output   string
	// ID is the id of the progress element. It defaults to the id of the
	// progress section of Config.
	ID string
	// Value is committed through an edit, as if typed by a user.
	Value string
	// Colors are split evenly over [0, 100].
	Colors   []string
	BarColor string
	// Config optionally synchronizes the progress value into targets.
	Config string
}

// NewProgressOptions returns ProgressOptions with default values.
func NewProgressOptions() *ProgressOptions {
	return &ProgressOptions{Output: "-"}
}

// AddFlags adds the progress flags to fs.
func (o *ProgressOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Document, "document", "d", o.Document,
		"Path to the HTML document holding the progress element")
	fs.StringVarP(&o.Output, "output", "o", o.Output,
		"Where to write the updated document (- for stdout)")
	fs.StringVar(&o.ID, "id", o.ID,
		"Id of the progress element")
	fs.StringVar(&o.Value, "value", o.Value,
		"New value, a number in [0, 100] with an optional % sign")
	fs.StringSliceVar(&o.Colors, "colors", o.Colors,
		"Bar colors split evenly over the value range")
	fs.StringVar(&o.BarColor, "bar-color", o.BarColor,
		"Bar color when no interval matches")
	fs.StringVarP(&o.Config, "config", "c", o.Config,
		"Optional synchronizer configuration fed by the progress value; its progress section supplies defaults for the flags")
}

// Validate validates the progress options.
func (o *ProgressOptions) Validate() error {
	var errs []error

	if o.Document == "" {
		errs = append(errs, errors.New("document is required"))
	}

	if o.ID == "" && o.Config == "" {
		errs = append(errs, errors.New("id is required"))
	}

	for i, c := range o.Colors {
		if strings.TrimSpace(c) == "" {
			errs = append(errs, fmt.Errorf("colors[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}

// IsStdout reports whether path designates standard output.
func IsStdout(path string) bool {
	return path == "" || path == "-"
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}
