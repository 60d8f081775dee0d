package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"fieldsync/internal/common"
)

// Diagnostic codes.
const (
	CodeInvalidValue      = "invalid_value"
	CodeUnknownKey        = "unknown_key"
	CodeUnknownVariable   = "unknown_variable"
	CodeVariableCycle     = "variable_cycle"
	CodeNotYetSupported   = "not_yet_supported"
	CodeNoUpdatable       = "no_updatable"
	CodeNoOutput          = "no_output"
	CodeUnknownElement    = "unknown_element"
	CodeShadowedVariable  = "shadowed_variable"
	CodeConflictingOutput = "conflicting_output"
)

// Diagnostics holds all diagnostic information from validation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Path locates the offending configuration node, e.g. "applyTo[1].text".
	Path string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends diag to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, path string, suggestions ...string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Path: path, Suggestions: suggestions})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, path string, suggestions ...string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Path: path, Suggestions: suggestions})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, path string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Path: path})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err combines all error diagnostics into one error, or returns nil if
// valid. multierr.Errors recovers the individual diagnostics.
func (d *Diagnostics) Err() error {
	var err error
	for _, e := range d.Errors {
		err = multierr.Append(err, errors.New(e.String()))
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + quoteAll(d.Suggestions) + "?)"
	}

	if d.Path != "" {
		return d.Path + ": " + msg
	}

	return msg
}

func quoteAll(ss []string) string {
	quoted := common.Map(ss, func(s string) string { return fmt.Sprintf("%q", s) })
	return strings.Join(quoted, " or ")
}
