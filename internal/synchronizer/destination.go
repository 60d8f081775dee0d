package synchronizer

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"fieldsync/internal/dom"
)

var markdown = goldmark.New()

var stringType = reflect.TypeFor[string]()

// content is the output of one target: prefix and suffix are configured
// text, value is the field value or the rendered template.
type content struct {
	prefix string
	value  string
	suffix string
}

func (c content) String() string {
	return c.prefix + c.value + c.suffix
}

// destination writes output into a resolved updatable.
type destination interface {
	write(c content) error
}

// elementDestination writes into a DOM element.
type elementDestination struct {
	el *dom.Element
	// html writes innerHTML without escaping prefix and suffix.
	html bool
	// htmlValue also leaves the value unescaped.
	htmlValue bool
}

func (d elementDestination) write(c content) error {
	if d.el.HasValueSlot() {
		return d.el.SetFormValue(c.String())
	}

	if !d.html {
		return d.el.SetInnerHTML(dom.EscapeHTML(c.String()))
	}

	v := c.value
	if !d.htmlValue {
		v = dom.EscapeHTML(v)
	}

	return d.el.SetInnerHTML(c.prefix + v + c.suffix)
}

type setterDestination struct{ s Setter }

func (d setterDestination) write(c content) error { return d.s.SetValue(c.String()) }

type valueSetterDestination struct{ s ValueSetter }

func (d valueSetterDestination) write(c content) error { return d.s.Value(c.String()) }

type valSetterDestination struct{ s ValSetter }

func (d valSetterDestination) write(c content) error { return d.s.Val(c.String()) }

// namedFieldDestination assigns a field (or map key) chosen by name.
type namedFieldDestination struct {
	obj  any
	name string
}

func (d namedFieldDestination) write(c content) error {
	return assignField(d.obj, d.name, c.String())
}

// namedMethodDestination calls a single-argument method chosen by name.
type namedMethodDestination struct {
	obj  any
	name string
}

func (d namedMethodDestination) write(c content) error {
	return callMethod(d.obj, d.name, c.String())
}

// propertyDestination assigns the value property.
type propertyDestination struct{ obj any }

func (d propertyDestination) write(c content) error {
	return assignField(d.obj, "value", c.String())
}

// selectDestination picks the write strategy for handle h. Named fields and
// methods come first for templates; prefix/suffix output prefers the DOM.
func selectDestination(h any, t *Target, concat bool) (destination, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: no destination", ErrInvalidArgument)
	}

	el, isElement := h.(*dom.Element)
	if isElement && el == nil {
		return nil, fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}

	elementDest := elementDestination{el: el, html: t.HTML || t.Markdown, htmlValue: t.HTMLValue || t.Markdown}

	if concat {
		if isElement {
			return elementDest, nil
		}

		if t.Setter != "" {
			return namedMethodDestination{obj: h, name: t.Setter}, nil
		}

		if t.SetField != "" {
			return namedFieldDestination{obj: h, name: t.SetField}, nil
		}
	} else {
		if t.SetField != "" {
			return namedFieldDestination{obj: h, name: t.SetField}, nil
		}

		if t.Setter != "" {
			return namedMethodDestination{obj: h, name: t.Setter}, nil
		}

		if isElement {
			elementDest.htmlValue = true

			return elementDest, nil
		}
	}

	switch s := h.(type) {
	case Setter:
		return setterDestination{s}, nil
	case ValueSetter:
		return valueSetterDestination{s}, nil
	case ValSetter:
		return valSetterDestination{s}, nil
	}

	if isList(h) {
		return nil, fmt.Errorf("%w: list destination %T", ErrNotYetSupported, h)
	}

	if hasProperty(h) {
		return propertyDestination{h}, nil
	}

	return nil, fmt.Errorf("%w: cannot write to %T", ErrUnsupportedOperation, h)
}

// renderMarkdown converts s to HTML.
func renderMarkdown(s string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func assignField(obj any, name, s string) error {
	switch m := obj.(type) {
	case map[string]any:
		m[name] = s
		return nil
	case map[string]string:
		m[name] = s
		return nil
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: cannot assign field %q of %T", ErrUnsupportedOperation, name, obj)
	}

	fv := structField(rv.Elem(), name)
	if !fv.IsValid() || !fv.CanSet() {
		return fmt.Errorf("%w: field %q of %T", ErrNotFound, name, obj)
	}

	switch {
	case fv.Kind() == reflect.String:
		fv.SetString(s)
	case stringType.AssignableTo(fv.Type()):
		fv.Set(reflect.ValueOf(s))
	default:
		return fmt.Errorf("%w: field %q of %T has type %s", ErrUnsupportedOperation, name, obj, fv.Type())
	}

	return nil
}

func callMethod(obj any, name, s string) error {
	if m, ok := obj.(map[string]any); ok {
		switch fn := m[name].(type) {
		case func(string):
			fn(s)
			return nil
		case func(string) error:
			return fn(s)
		default:
			return fmt.Errorf("%w: method %q of %T", ErrNotFound, name, obj)
		}
	}

	rv := reflect.ValueOf(obj)

	method := rv.MethodByName(name)
	if !method.IsValid() {
		method = rv.MethodByName(capitalize(name))
	}

	if !method.IsValid() {
		return fmt.Errorf("%w: method %q of %T", ErrNotFound, name, obj)
	}

	mt := method.Type()
	if mt.NumIn() != 1 || !stringType.AssignableTo(mt.In(0)) {
		return fmt.Errorf("%w: method %q of %T does not take a string", ErrUnsupportedOperation, name, obj)
	}

	for _, out := range method.Call([]reflect.Value{reflect.ValueOf(s)}) {
		if err, ok := out.Interface().(error); ok && err != nil {
			return err
		}
	}

	return nil
}

// hasProperty reports whether obj has an assignable value property.
func hasProperty(obj any) bool {
	switch obj.(type) {
	case map[string]any, map[string]string:
		return true
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return false
	}

	fv := structField(rv.Elem(), "value")

	return fv.IsValid() && fv.CanSet()
}

// structField looks a field up by name, then by its capitalized name.
func structField(rv reflect.Value, name string) reflect.Value {
	if f, ok := rv.Type().FieldByName(name); ok && f.IsExported() {
		return rv.FieldByIndex(f.Index)
	}

	return rv.FieldByName(capitalize(name))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
