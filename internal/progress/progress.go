package progress

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"fieldsync/internal/common"
	"fieldsync/internal/dom"
	"fieldsync/internal/synchronizer"
)

var (
	// ErrInvalidValue reports a value outside [0, 100] or an unparsable one.
	ErrInvalidValue = errors.New("invalid progress value")
	// ErrNotEditable reports an edit on a read-only, disabled or
	// non-focusable progress.
	ErrNotEditable = errors.New("progress is not editable")
)

// DefaultBarColor is used when no interval matches and no fallback is set.
const DefaultBarColor = "pink"

var percentRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)%?$`)

// ChangeEvent describes a committed edit.
type ChangeEvent struct {
	Progress *Progress
	OldValue float64
	Value    float64
}

// Progress is an editable percentage with a colored bar.
type Progress struct {
	value     float64
	intervals []Interval
	barColor  string
	colorFunc func(float64) string

	editable  bool
	disabled  bool
	focusable bool
	editing   bool
	editText  string

	sync      *synchronizer.Synchronizer
	listeners []func(ChangeEvent)

	el    *dom.Element
	bar   *dom.Element
	label *dom.Element

	log logr.Logger
}

// Option configures a Progress.
type Option func(*Progress)

// WithIntervals sets the color intervals.
func WithIntervals(intervals ...Interval) Option {
	return func(p *Progress) { p.intervals = intervals }
}

// WithBarColor sets the fallback bar color.
func WithBarColor(color string) Option {
	return func(p *Progress) { p.barColor = color }
}

// WithBarColorFunc sets a fallback computing the color from the value.
func WithBarColorFunc(fn func(float64) string) Option {
	return func(p *Progress) { p.colorFunc = fn }
}

// WithSynchronizer attaches s. Its field is set to the progress.
func WithSynchronizer(s *synchronizer.Synchronizer) Option {
	return func(p *Progress) { p.sync = s }
}

// WithEditable sets whether the value may be edited.
func WithEditable(editable bool) Option {
	return func(p *Progress) { p.editable = editable }
}

// WithDisabled disables the progress.
func WithDisabled(disabled bool) Option {
	return func(p *Progress) { p.disabled = disabled }
}

// WithFocusable sets whether the progress takes focus.
func WithFocusable(focusable bool) Option {
	return func(p *Progress) { p.focusable = focusable }
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(p *Progress) { p.log = l }
}

// New returns an editable, focusable progress at 0.
func New(opts ...Option) *Progress {
	p := &Progress{
		editable:  true,
		focusable: true,
		log:       logr.Discard(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.sync != nil {
		p.sync.SetField(p)
	}

	return p
}

// Value returns the current percentage.
func (p *Progress) Value() float64 {
	return p.value
}

// GetValue returns the current percentage, making a Progress usable as a
// synchronizer field.
func (p *Progress) GetValue() any {
	return p.value
}

// SetValue sets the percentage from a number or a string such as "65" or
// "65%".
func (p *Progress) SetValue(v any) error {
	f, err := ParseValue(v)
	if err != nil {
		return err
	}

	p.set(f)

	return nil
}

// ParseValue converts v to a percentage in [0, 100].
func ParseValue(v any) (float64, error) {
	var f float64

	switch x := v.(type) {
	case string:
		m := percentRe.FindStringSubmatch(strings.TrimSpace(x))
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, x)
		}

		f, _ = strconv.ParseFloat(m[1], 64)
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}

	if !common.InRange(0, f, 100) {
		return 0, fmt.Errorf("%w: %v is outside [0, 100]", ErrInvalidValue, f)
	}

	return f, nil
}

func (p *Progress) set(v float64) {
	p.value = v
	p.log.V(4).Info("progress value set", "value", v, "color", p.Color())
	p.render()
}

// ColorFor returns the bar color for v: the first matching interval, else
// the fallback color function, else the fallback color.
func (p *Progress) ColorFor(v float64) string {
	for _, in := range p.intervals {
		if in.Contains(v) {
			return in.Color
		}
	}

	if p.colorFunc != nil {
		return p.colorFunc(v)
	}

	if p.barColor != "" {
		return p.barColor
	}

	return DefaultBarColor
}

// Color returns the bar color for the current value.
func (p *Progress) Color() string {
	return p.ColorFor(p.value)
}

// Editable reports whether the value may be edited now.
func (p *Progress) Editable() bool {
	return p.editable && !p.disabled && p.focusable
}

// SetEditable sets whether the value may be edited.
func (p *Progress) SetEditable(editable bool) {
	p.editable = editable
	p.render()
}

// SetReadOnly is the inverse of SetEditable.
func (p *Progress) SetReadOnly(readOnly bool) {
	p.SetEditable(!readOnly)
}

// SetDisabled disables or enables the progress.
func (p *Progress) SetDisabled(disabled bool) {
	p.disabled = disabled
	p.render()
}

// SetFocusable sets whether the progress takes focus.
func (p *Progress) SetFocusable(focusable bool) {
	p.focusable = focusable
	p.render()
}

// AddChangeListener registers fn for committed edits.
func (p *Progress) AddChangeListener(fn func(ChangeEvent)) {
	p.listeners = append(p.listeners, fn)
}

// Editing reports whether an edit is in progress.
func (p *Progress) Editing() bool {
	return p.editing
}

// EditText returns the text of the edit in progress.
func (p *Progress) EditText() string {
	return p.editText
}

// Edit starts editing with the current value as text.
func (p *Progress) Edit() error {
	if !p.Editable() {
		return ErrNotEditable
	}

	p.editing = true
	p.editText = formatValue(p.value)
	p.render()

	return nil
}

// SetEditText replaces the text of the edit in progress.
func (p *Progress) SetEditText(s string) error {
	if !p.editing {
		return fmt.Errorf("%w: not editing", ErrNotEditable)
	}

	p.editText = s

	return nil
}

// CancelEditing ends the edit without changing the value.
func (p *Progress) CancelEditing() {
	p.editing = false
	p.render()
}

// StopEditing commits the edit. When the value changed, the attached
// synchronizer runs with the progress as its field and the change listeners
// are notified, in that order. An invalid text keeps the edit open.
func (p *Progress) StopEditing() error {
	if !p.editing {
		return nil
	}

	v, err := ParseValue(p.editText)
	if err != nil {
		return err
	}

	p.editing = false

	old := p.value
	if v == old {
		p.render()
		return nil
	}

	p.set(v)

	if p.sync != nil {
		if err := p.sync.ProcessField(p); err != nil {
			return fmt.Errorf("synchronize progress: %w", err)
		}
	}

	ev := ChangeEvent{Progress: p, OldValue: old, Value: v}
	for _, fn := range p.listeners {
		fn(ev)
	}

	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
