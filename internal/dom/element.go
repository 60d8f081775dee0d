package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is an element node of a Document.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the document owning the element.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

// ID returns the id attribute, or an empty string.
func (e *Element) ID() string {
	v, _ := attr(e.node, "id")
	return v
}

// Parent returns the parent element, or nil at the top of the tree or for
// detached elements.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Children returns the element children (text and comment nodes are skipped).
func (e *Element) Children() []*Element {
	var children []*Element

	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, e.doc.wrap(c))
		}
	}

	return children
}

// Index returns the position of the element among its parent's element
// children, or -1 when it has no parent element.
func (e *Element) Index() int {
	parent := e.Parent()
	if parent == nil {
		return -1
	}

	for i, c := range parent.Children() {
		if c == e {
			return i
		}
	}

	return -1
}

// PrevSibling returns the previous element sibling, or nil.
func (e *Element) PrevSibling() *Element {
	for c := e.node.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return e.doc.wrap(c)
		}
	}

	return nil
}

// NextSibling returns the next element sibling, or nil.
func (e *Element) NextSibling() *Element {
	for c := e.node.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return e.doc.wrap(c)
		}
	}

	return nil
}

// Label returns the label element associated with e: a <label for="id">
// anywhere in the document first, then an enclosing <label>.
// It returns nil when the element is not labelled.
func (e *Element) Label() *Element {
	if id := e.ID(); id != "" {
		n := findNode(e.doc.root, func(n *html.Node) bool {
			v, ok := attr(n, "for")
			return n.DataAtom == atom.Label && ok && v == id
		})
		if n != nil {
			return e.doc.wrap(n)
		}
	}

	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Label {
			return e.doc.wrap(p)
		}
	}

	return nil
}

// HasValueSlot reports whether the element carries a native value
// (input and textarea).
func (e *Element) HasValueSlot() bool {
	switch e.TagName() {
	case "input", "textarea":
		return true
	default:
		return false
	}
}

// FormValue returns the native value of an input or textarea element.
// The boolean is false for elements without a value slot.
func (e *Element) FormValue() (string, bool) {
	switch e.TagName() {
	case "input":
		v, _ := attr(e.node, "value")
		return v, true
	case "textarea":
		return e.TextContent(), true
	default:
		return "", false
	}
}

// SetFormValue writes the native value of an input or textarea element.
func (e *Element) SetFormValue(v string) error {
	switch e.TagName() {
	case "input":
		e.SetAttr("value", v)
	case "textarea":
		e.removeChildren()
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
	default:
		return fmt.Errorf("element <%s> has no value slot", e.TagName())
	}

	return nil
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var sb strings.Builder

	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return sb.String()
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer

	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}

	return buf.String()
}

// SetInnerHTML replaces the children of the element with the nodes parsed
// from s in the context of the element.
func (e *Element) SetInnerHTML(s string) error {
	nodes, err := html.ParseFragment(strings.NewReader(s), e.node)
	if err != nil {
		return fmt.Errorf("failed to parse HTML fragment for <%s>: %w", e.TagName(), err)
	}

	e.removeChildren()

	for _, n := range nodes {
		e.node.AppendChild(n)
	}

	return nil
}

// AppendChild appends child to the element, detaching it first if needed.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}

	e.node.AppendChild(child.node)
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return attr(e.node, name)
}

// SetAttr sets (or adds) the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}

	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]

	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}

		attrs = append(attrs, a)
	}

	e.node.Attr = attrs
}

func (e *Element) removeChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}
