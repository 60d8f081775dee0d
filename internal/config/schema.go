package config

// Alias lists for the keys accepted in configuration files.
const (
	KeyVersion    = "version"
	KeyDelimiters = "delimiters|delims"
	KeyField      = "field"
	KeyValue      = "value"
	KeyApplyTo    = "applyTo|at|applyto|updatables|updates|update|elements"
	KeyVariables  = "variables|vars|parameters|params|parms"
	KeyProgress   = "progress|progressBar"

	KeyUpdatable  = "updatable|updateable|field|element"
	KeyText       = "text"
	KeyPrefix     = "prefix"
	KeySuffix     = "sufix|suffix"
	KeyHTML       = "html|htmlText"
	KeyHTMLValue  = "htmlValue"
	KeyMarkdown   = "markdown|md"
	KeySetField   = "setField|valueField|valueFieldName|fieldName|setFieldName"
	KeySetter     = "setter|setMethod|setterMethod|valueMethod|valueFuncName|valueFunctionName"
	KeyExpression = "expression|formula|calc"
	KeyVariable   = "variable"

	KeyID       = "id"
	KeySelector = "selector|query"
	KeyName     = "field|name"

	KeyColors   = "colors|intervals|ranges"
	KeyBarColor = "barColor|color"
	KeyEditable = "editable"
	KeyDisabled = "disabled"

	KeyOpen  = "open|opener|start"
	KeyClose = "close|closer|end"
)

// DefaultVersion is the version assumed for files that do not declare one.
const DefaultVersion = "1"

// File is a parsed synchronizer configuration.
type File struct {
	Version    string      `yaml:"version,omitempty"`
	Delimiters *Delimiters `yaml:"delimiters,omitempty"`
	// Field is the id of the field element.
	Field string `yaml:"field,omitempty"`
	// Value is a literal field value, used when Field is empty.
	Value     any         `yaml:"value,omitempty"`
	Variables VariableMap `yaml:"variables,omitempty"`
	Targets   []Target    `yaml:"applyTo,omitempty"`
	Progress  *Progress   `yaml:"progress,omitempty"`

	unknown []string
}

// Progress configures a progress element fed into the synchronizer.
type Progress struct {
	// ID is the id of the progress element.
	ID string `yaml:"id,omitempty"`
	// Colors are plain colors split evenly, or range objects.
	Colors   []any `yaml:"colors,omitempty"`
	BarColor any   `yaml:"barColor,omitempty"`
	Editable *bool `yaml:"editable,omitempty"`
	Disabled bool  `yaml:"disabled,omitempty"`

	unknown []string
}

// Delimiters are the template opener and closer.
type Delimiters struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// VariableMap maps variable names to raw descriptors.
type VariableMap map[string]any

// Target configures one apply-to entry.
type Target struct {
	Updatable  Updatable   `yaml:"updatable,omitempty"`
	Text       string      `yaml:"text,omitempty"`
	Prefix     string      `yaml:"prefix,omitempty"`
	Suffix     string      `yaml:"suffix,omitempty"`
	Variables  VariableMap `yaml:"variables,omitempty"`
	HTML       bool        `yaml:"html,omitempty"`
	HTMLValue  bool        `yaml:"htmlValue,omitempty"`
	Markdown   bool        `yaml:"markdown,omitempty"`
	SetField   string      `yaml:"setField,omitempty"`
	Setter     string      `yaml:"setter,omitempty"`
	Expression string      `yaml:"expression,omitempty"`
	Variable   string      `yaml:"variable,omitempty"`

	unknown []string
}

// Updatable locates a target destination. Ref holds the string form
// (relative token or element id).
type Updatable struct {
	Ref      string      `yaml:"-"`
	ID       string      `yaml:"id,omitempty"`
	Selector string      `yaml:"selector,omitempty"`
	Field    string      `yaml:"field,omitempty"`
	List     []Updatable `yaml:"-"`
}

// IsZero returns true when no locator is set. It also drives omitempty.
func (u Updatable) IsZero() bool {
	return u.Ref == "" && u.ID == "" && u.Selector == "" && u.Field == "" && u.List == nil
}

// HasConcat reports whether the target wraps the value with a prefix or a
// suffix.
func (t *Target) HasConcat() bool {
	return t.Prefix != "" || t.Suffix != ""
}
