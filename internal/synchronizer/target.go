package synchronizer

// Setter is a destination exposing SetValue.
type Setter interface {
	SetValue(v string) error
}

// ValueSetter is a destination using Value as a setter method.
type ValueSetter interface {
	Value(v string) error
}

// ValSetter is a destination using Val as a setter method.
type ValSetter interface {
	Val(v string) error
}

// SetterFunc adapts a function to the Setter interface.
type SetterFunc func(v string) error

// SetValue calls f(v).
func (f SetterFunc) SetValue(v string) error {
	return f(v)
}

// Updatable describes how to locate a destination. At most one locator is
// expected to be set; they are consulted in field order.
type Updatable struct {
	// Ref is either a relative token such as "[[label]]" or
	// "[[next-sibling]]" resolved from the field element, or an element id.
	Ref string
	// List is a sequence of updatables. Not supported yet.
	List []Updatable
	// Selector is a query string. Not supported yet.
	Selector string
	// SelectorFunc is invoked to obtain the destination.
	SelectorFunc func() (any, error)
	// ID is an element id looked up in the document.
	ID string
	// Field names a field to update. Not supported yet.
	Field string
	// Handle is the destination itself.
	Handle any
}

// Ref returns an updatable resolved from a relative token or an element id.
func Ref(s string) Updatable {
	return Updatable{Ref: s}
}

// ByID returns an updatable resolved by element id.
func ByID(id string) Updatable {
	return Updatable{ID: id}
}

// BySelector returns an updatable resolved by calling fn.
func BySelector(fn func() (any, error)) Updatable {
	return Updatable{SelectorFunc: fn}
}

// Handle returns an updatable wrapping the destination v.
func Handle(v any) Updatable {
	return Updatable{Handle: v}
}

// List returns an updatable grouping several updatables.
func List(us ...Updatable) Updatable {
	return Updatable{List: us}
}

// IsZero returns true when no locator is set.
func (u Updatable) IsZero() bool {
	return u.Ref == "" && u.List == nil && u.Selector == "" && u.SelectorFunc == nil &&
		u.ID == "" && u.Field == "" && u.Handle == nil
}

// Target is one entry of a Synchronizer's apply-to list.
type Target struct {
	// Action, when set, is invoked instead of the value pipeline.
	Action func() error

	// Updatable locates the destination.
	Updatable Updatable

	// Text is a template with delimited placeholders. It takes precedence
	// over Prefix and Suffix.
	Text string
	// Prefix and Suffix are wrapped around the field value when there is no
	// template.
	Prefix string
	Suffix string

	// Variables override the Synchronizer's variables for this target.
	Variables Variables

	// HTML writes element content as HTML rather than escaped text.
	HTML bool
	// HTMLValue leaves the field value unescaped in prefix/suffix HTML mode.
	HTMLValue bool
	// Markdown converts the output from Markdown to HTML before writing it.
	Markdown bool

	// SetField names the field of the destination to assign.
	SetField string
	// Setter names the destination method to call with the output.
	Setter string

	// Variable and Expression request computed prefix/suffix values. Not
	// supported yet.
	Variable   any
	Expression any
}

// hasConcat reports whether the target wraps the value with a prefix or a
// suffix.
func (t *Target) hasConcat() bool {
	return t.Prefix != "" || t.Suffix != ""
}
