package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	return newDocument(root), nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}
}

// wrap returns the cached element wrapper for n, or nil if n is not an element.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}

	if el, ok := d.elements[n]; ok {
		return el
	}

	el := &Element{node: n, doc: d}
	d.elements[n] = el

	return el
}

// ElementByID returns the first element whose id attribute equals id,
// or nil if there is none.
func (d *Document) ElementByID(id string) *Element {
	if d == nil || id == "" {
		return nil
	}

	n := findNode(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})

	return d.wrap(n)
}

// Body returns the body element, or nil for documents without one.
func (d *Document) Body() *Element {
	return d.wrap(findNode(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Body
	}))
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)

	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on render failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}

	return buf.String()
}

// findNode walks the tree rooted at n depth-first and returns the first
// element node matching pred.
func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}

	if n.Type == html.ElementNode && pred(n) {
		return n
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, pred); found != nil {
			return found
		}
	}

	return nil
}

// EscapeHTML escapes the characters that are special in HTML text
// (&, ', <, >, ", \r).
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
