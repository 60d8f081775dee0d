package synchronizer

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"fieldsync/internal/textpattern"
)

// state is one immutable configuration snapshot.
type state struct {
	field      any
	applyTo    []Target
	variables  Variables
	doc        Document
	delim      textpattern.Delimiters
	fieldValue FieldValueFunc
	logger     logr.Logger
}

// Synchronizer copies the value of a field into its targets.
//
// Setters are safe to call while Process runs: they publish a new snapshot
// and the running pass keeps the one it started with.
type Synchronizer struct {
	mu sync.Mutex // serializes writers
	st atomic.Pointer[state]
}

// Option configures a Synchronizer at construction.
type Option func(*state)

// WithField sets the value source.
func WithField(field any) Option {
	return func(s *state) { s.field = field }
}

// WithApplyTo sets the ordered target list.
func WithApplyTo(targets ...Target) Option {
	return func(s *state) { s.applyTo = slices.Clone(targets) }
}

// WithVariables sets the global variables. Descriptors are stored as given.
func WithVariables(vs Variables) Option {
	return func(s *state) { s.variables = vs }
}

// WithDocument sets the document used for element id lookups.
func WithDocument(doc Document) Option {
	return func(s *state) { s.doc = doc }
}

// WithDelimiters sets the template opener and closer.
func WithDelimiters(d textpattern.Delimiters) Option {
	return func(s *state) { s.delim = d }
}

// WithLogger sets the logger. Passes log at V(2), targets at V(4).
func WithLogger(l logr.Logger) Option {
	return func(s *state) { s.logger = l }
}

// WithFieldValue replaces DefaultFieldValue.
func WithFieldValue(fn FieldValueFunc) Option {
	return func(s *state) {
		if fn != nil {
			s.fieldValue = fn
		}
	}
}

// New returns a Synchronizer configured by opts.
func New(opts ...Option) *Synchronizer {
	st := &state{
		delim:      textpattern.DefaultDelimiters,
		fieldValue: DefaultFieldValue,
		logger:     logr.Discard(),
	}

	for _, opt := range opts {
		opt(st)
	}

	s := &Synchronizer{}
	s.st.Store(st)

	return s
}

// update applies fn to a copy of the current snapshot and publishes it.
func (s *Synchronizer) update(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.st.Load()
	if err := fn(&next); err != nil {
		return err
	}

	s.st.Store(&next)

	return nil
}

func (s *Synchronizer) set(fn func(*state)) {
	_ = s.update(func(st *state) error {
		fn(st)
		return nil
	})
}

// Field returns the value source.
func (s *Synchronizer) Field() any {
	return s.st.Load().field
}

// SetField replaces the value source.
func (s *Synchronizer) SetField(field any) {
	s.set(func(st *state) { st.field = field })
}

// ApplyTo returns a copy of the target list.
func (s *Synchronizer) ApplyTo() []Target {
	return slices.Clone(s.st.Load().applyTo)
}

// SetTargets replaces the whole target list.
func (s *Synchronizer) SetTargets(targets []Target) {
	targets = slices.Clone(targets)
	s.set(func(st *state) { st.applyTo = targets })
}

// SetApplyTo replaces the target list with the single target x: a Target,
// a *Target, a string (relative token or element id) or an action func.
// Lists are rejected; use SetTargets.
func (s *Synchronizer) SetApplyTo(x any) error {
	t, err := singleTarget(x)
	if err != nil {
		return err
	}

	s.set(func(st *state) { st.applyTo = []Target{t} })

	return nil
}

func singleTarget(x any) (Target, error) {
	switch v := x.(type) {
	case Target:
		return v, nil
	case *Target:
		if v != nil {
			return *v, nil
		}
	case string:
		return Target{Updatable: Ref(v)}, nil
	case Updatable:
		return Target{Updatable: v}, nil
	case func() error:
		return Target{Action: v}, nil
	case func():
		return Target{Action: func() error {
			v()
			return nil
		}}, nil
	}

	if isList(x) {
		return Target{}, fmt.Errorf("%w: SetApplyTo takes a single target, got %T", ErrInvalidArgument, x)
	}

	return Target{}, fmt.Errorf("%w: unsupported target %T", ErrInvalidArgument, x)
}

// Variables returns the global variables.
func (s *Synchronizer) Variables() Variables {
	return s.st.Load().variables
}

// SetVariables replaces the global variables. vs is either a map from name
// to descriptor, stored as given unless normalize is set, or a list of
// alternating names and descriptors or of descriptors carrying a "name".
// Lists are always normalized.
func (s *Synchronizer) SetVariables(vs any, normalize bool) error {
	var (
		vars Variables
		err  error
	)

	switch v := vs.(type) {
	case nil:
		vars = Variables{}
	case Variables:
		vars = v
	case map[string]any:
		vars = Variables(v)
	case []any:
		vars, err = variablesFromList(v)
		normalize = false
	default:
		return fmt.Errorf("%w: unsupported variables %T", ErrInvalidArgument, vs)
	}

	if err != nil {
		return err
	}

	if normalize {
		if vars, err = NormalizeVariables(vars); err != nil {
			return err
		}
	}

	s.set(func(st *state) { st.variables = vars })

	return nil
}

// FieldValue returns the field value resolver.
func (s *Synchronizer) FieldValue() FieldValueFunc {
	return s.st.Load().fieldValue
}

// SetFieldValue replaces the field value resolver. fn is a function of the
// field, a function of no arguments, or an object whose Value() or
// GetValue() method is bound as the resolver.
func (s *Synchronizer) SetFieldValue(fn any) error {
	var f FieldValueFunc

	switch v := fn.(type) {
	case FieldValueFunc:
		f = v
	case func(any) any:
		f = v
	case func() any:
		f = func(any) any { return v() }
	case ValueGetter:
		f = func(any) any { return v.Value() }
	case Getter:
		f = func(any) any { return v.GetValue() }
	}

	if f == nil {
		return fmt.Errorf("%w: unsupported field value resolver %T", ErrInvalidArgument, fn)
	}

	s.set(func(st *state) { st.fieldValue = f })

	return nil
}

// Delimiters returns the template opener and closer.
func (s *Synchronizer) Delimiters() textpattern.Delimiters {
	return s.st.Load().delim
}

// SetDelimiters replaces the template opener and closer.
func (s *Synchronizer) SetDelimiters(d textpattern.Delimiters) {
	s.set(func(st *state) { st.delim = d })
}

// SetDocument replaces the document used for element id lookups.
func (s *Synchronizer) SetDocument(doc Document) {
	s.set(func(st *state) { st.doc = doc })
}

// SetLogger replaces the logger.
func (s *Synchronizer) SetLogger(l logr.Logger) {
	s.set(func(st *state) { st.logger = l })
}

// Process runs a pass with the configured field.
func (s *Synchronizer) Process() error {
	return s.ProcessField(nil)
}

// ProcessField runs a pass reading field, or the configured field when
// field is nil. The first failing target stops the pass.
func (s *Synchronizer) ProcessField(field any) error {
	st := s.st.Load()
	if field == nil {
		field = st.field
	}

	p := &pass{
		st:    st,
		field: field,
		res:   resolver{doc: st.doc, field: field},
	}

	st.logger.V(2).Info("processing field", "targets", len(st.applyTo))

	for i := range st.applyTo {
		if err := p.apply(&st.applyTo[i]); err != nil {
			st.logger.V(2).Info("target failed", "index", i, "err", err.Error())
			return &TargetError{Index: i, Err: err}
		}
	}

	return nil
}

// pass is one run of Process.
type pass struct {
	st    *state
	field any
	res   resolver
}

func (p *pass) apply(t *Target) error {
	if t.Action != nil {
		p.st.logger.V(4).Info("calling action")
		return t.Action()
	}

	h, err := p.res.resolve(t.Updatable, t)
	if err != nil {
		return err
	}

	switch {
	case t.Text != "":
		out, err := p.render(t)
		if err != nil {
			return err
		}

		p.st.logger.V(4).Info("writing template", "destination", fmt.Sprintf("%T", h), "output", out)

		return write(h, t, content{value: out}, false)
	case t.hasConcat():
		if t.Variable != nil || t.Expression != nil {
			return fmt.Errorf("%w: computed prefix or suffix", ErrNotYetSupported)
		}

		c := content{
			prefix: t.Prefix,
			value:  Stringify(p.st.fieldValue(p.field)),
			suffix: t.Suffix,
		}

		p.st.logger.V(4).Info("writing value", "destination", fmt.Sprintf("%T", h), "output", c.String())

		return write(h, t, c, true)
	default:
		return nil
	}
}

func (p *pass) render(t *Target) (string, error) {
	delim := p.st.delim
	if (delim.Open == "") != (delim.Close == "") {
		return "", fmt.Errorf("%w: delimiters %q/%q", ErrNotYetSupported, delim.Open, delim.Close)
	}

	r := &variableResolver{
		vars:       mergeVariables(p.st.variables, t.Variables),
		field:      p.field,
		fieldValue: p.st.fieldValue,
	}

	return textpattern.New(t.Text, delim).Render(r.substitute)
}

func write(h any, t *Target, c content, concat bool) error {
	if t.Markdown {
		out, err := renderMarkdown(c.String())
		if err != nil {
			return err
		}

		c = content{value: out}
	}

	dest, err := selectDestination(h, t, concat)
	if err != nil {
		return err
	}

	return dest.write(c)
}
