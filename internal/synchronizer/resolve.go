package synchronizer

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"fieldsync/internal/dom"
)

// Document looks up elements by id.
type Document interface {
	ElementByID(id string) *dom.Element
}

var (
	relativeRefRe   = regexp.MustCompile(`^\[\[([^\[\]]+)\]\]$`)
	prevSameLevelRe = regexp.MustCompile(`(?i)^prev(?:ious)?-?same-?level(?:-?(?:sibling|element))?$`)
	nextSameLevelRe = regexp.MustCompile(`(?i)^next-?same-?level(?:-?(?:sibling|element))?$`)
	prevRe          = regexp.MustCompile(`(?i)^prev(?:ious)?(?:-?(?:sibling|element))?$`)
	nextRe          = regexp.MustCompile(`(?i)^next(?:-?(?:sibling|element))?$`)
)

// resolver locates destinations for one pass.
type resolver struct {
	doc   Document
	field any
}

// resolve returns the destination handle described by u. A zero updatable
// resolves to nil; writing to it fails later.
func (r *resolver) resolve(u Updatable, t *Target) (any, error) {
	switch {
	case u.Ref != "":
		if m := relativeRefRe.FindStringSubmatch(u.Ref); m != nil {
			return r.relative(strings.TrimSpace(m[1]))
		}

		return r.byID(u.Ref)
	case u.List != nil:
		return nil, fmt.Errorf("%w: list of updatables", ErrNotYetSupported)
	case u.Selector != "":
		return nil, fmt.Errorf("%w: selector %q", ErrNotYetSupported, u.Selector)
	case u.SelectorFunc != nil:
		h, err := u.SelectorFunc()
		if err != nil {
			return nil, fmt.Errorf("selector: %w", err)
		}

		if h == nil {
			return nil, fmt.Errorf("%w: selector returned no destination", ErrNotFound)
		}

		return h, nil
	case u.ID != "":
		return r.byID(u.ID)
	case u.Field != "":
		return nil, fmt.Errorf("%w: updatable field %q", ErrNotYetSupported, u.Field)
	case u.Handle != nil:
		return handle(u.Handle, t)
	default:
		return nil, nil
	}
}

// handle accepts a direct destination: an element, anything with a setter
// capability or a value property, or any object when the target names the
// field or method to write.
func handle(h any, t *Target) (any, error) {
	switch h.(type) {
	case *dom.Element, Setter, ValueSetter, ValSetter:
		return h, nil
	}

	if isList(h) {
		return nil, fmt.Errorf("%w: list handle %T", ErrNotYetSupported, h)
	}

	if t.SetField != "" || t.Setter != "" || hasProperty(h) {
		return h, nil
	}

	return nil, fmt.Errorf("%w: %T has no setter capability", ErrUnsupportedOperation, h)
}

func (r *resolver) byID(id string) (any, error) {
	if r.doc == nil {
		return nil, fmt.Errorf("%w: element %q: no document", ErrNotFound, id)
	}

	el := r.doc.ElementByID(id)
	if el == nil {
		return nil, fmt.Errorf("%w: element %q", ErrNotFound, id)
	}

	return el, nil
}

// relative resolves a "[[token]]" lookup from the field element.
func (r *resolver) relative(token string) (any, error) {
	if strings.EqualFold(token, "label") {
		return r.label()
	}

	el, ok := r.field.(*dom.Element)
	if !ok {
		return nil, fmt.Errorf("%w: %q lookup needs an element field, got %T",
			ErrUnsupportedOperation, token, r.field)
	}

	if el.Parent() == nil {
		return nil, fmt.Errorf("%w: %q: field element has no parent", ErrNotFound, token)
	}

	var (
		sibling   *dom.Element
		sameLevel bool
	)

	switch {
	case prevSameLevelRe.MatchString(token):
		sibling, sameLevel = el.PrevSibling(), true
	case nextSameLevelRe.MatchString(token):
		sibling, sameLevel = el.NextSibling(), true
	case prevRe.MatchString(token):
		sibling = el.PrevSibling()
	case nextRe.MatchString(token):
		sibling = el.NextSibling()
	default:
		return nil, fmt.Errorf("%w: unknown relative token %q", ErrUnsupportedOperation, token)
	}

	if sibling != nil {
		return sibling, nil
	}

	if sameLevel {
		return nil, fmt.Errorf("%w: %q: no such sibling", ErrNotFound, token)
	}

	// TODO: continue the walk into the parent's siblings when the field is at
	// the edge of its parent.
	return nil, fmt.Errorf("%w: %q across parent boundary", ErrNotYetSupported, token)
}

// label resolves the field's label relation. Elements without an
// associated <label> fall back to their previous sibling.
func (r *resolver) label() (any, error) {
	if l, ok := r.field.(Labeled); ok {
		if x := l.Label(); x != nil && !isNilElement(x) {
			return x, nil
		}
	}

	el, ok := r.field.(*dom.Element)
	if !ok {
		return nil, fmt.Errorf("%w: label lookup on %T", ErrUnsupportedOperation, r.field)
	}

	if lbl := el.Label(); lbl != nil {
		return lbl, nil
	}

	if prev := el.PrevSibling(); prev != nil {
		return prev, nil
	}

	return nil, fmt.Errorf("%w: label of element %q", ErrNotFound, el.ID())
}

// isList reports whether v is a slice or array.
func isList(v any) bool {
	if v == nil {
		return false
	}

	k := reflect.TypeOf(v).Kind()

	return k == reflect.Slice || k == reflect.Array
}

func isNilElement(x any) bool {
	el, ok := x.(*dom.Element)
	return ok && el == nil
}
