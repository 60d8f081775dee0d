package progress

import (
	"errors"
	"fmt"
	"strings"

	"fieldsync/internal/common"
	"fieldsync/internal/dom"
)

// Class names of the bound element and its children.
const (
	ClassProgress = "progress"
	ClassBar      = "bar"
	ClassLabel    = "label"
	ClassDisabled = "disabled"
	ClassEditing  = "editing"
)

// Bind renders the progress into el, reusing its bar and label children
// when they exist and creating them otherwise. The initial value and the
// fallback bar color are read from data-value and data-bar-color.
func (p *Progress) Bind(el *dom.Element) error {
	if el == nil {
		return errors.New("bind progress: nil element")
	}

	p.el = el
	p.bar = childWithClass(el, ClassBar)
	p.label = childWithClass(el, ClassLabel)

	doc := el.Document()

	if p.bar == nil {
		p.bar = doc.CreateElement("div")
		p.bar.SetAttr("class", ClassBar)
		el.AppendChild(p.bar)
	}

	if p.label == nil {
		p.label = doc.CreateElement("span")
		p.label.SetAttr("class", ClassLabel)
		el.AppendChild(p.label)
	}

	value, barColor := common.Pair(dom.AttrList(el, "data-value", "data-bar-color"))

	if p.barColor == "" {
		p.barColor = barColor
	}

	if value != "" {
		if err := p.SetValue(value); err != nil {
			return err
		}
	}

	p.render()

	return nil
}

// Element returns the bound element, or nil.
func (p *Progress) Element() *dom.Element {
	return p.el
}

func (p *Progress) render() {
	if p.el == nil {
		return
	}

	classes := []string{ClassProgress}
	if p.disabled {
		classes = append(classes, ClassDisabled)
	}

	if p.editing {
		classes = append(classes, ClassEditing)
	}

	_ = dom.SetAttrs(p.el,
		"class", strings.Join(classes, " "),
		"data-value", formatValue(p.value),
		"role", "progressbar",
		"aria-valuenow", formatValue(p.value),
		"aria-valuemin", "0",
		"aria-valuemax", "100",
	)

	if p.Editable() {
		p.el.SetAttr("tabindex", "0")
	} else {
		dom.RemoveAttrs(p.el, "tabindex")
	}

	p.bar.SetAttr("style", fmt.Sprintf("width:%s%%;background-color:%s", formatValue(p.value), p.Color()))

	text := formatValue(p.value) + "%"
	if p.editing {
		text = p.editText
	}

	_ = p.label.SetInnerHTML(dom.EscapeHTML(text))
}

func childWithClass(el *dom.Element, class string) *dom.Element {
	for _, c := range el.Children() {
		v, _ := c.Attr("class")
		for _, f := range strings.Fields(v) {
			if f == class {
				return c
			}
		}
	}

	return nil
}
