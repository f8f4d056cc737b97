package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed HTML tree. Every read and write goes through the
// document lock so timers and event handlers running on other goroutines can
// share the same tree.
type Document struct {
	mu       sync.RWMutex
	root     *html.Node
	validity map[*html.Node]string
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is required")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// NewDocument adopts an existing tree. A nil root yields an empty document.
func NewDocument(root *html.Node) *Document {
	if root == nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{
		root:     root,
		validity: make(map[*html.Node]string),
	}
}

// Root returns the document node as an element handle.
func (d *Document) Root() *Element {
	if d == nil {
		return nil
	}
	return &Element{doc: d, node: d.root}
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	return d.firstByAtom(atom.Html)
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.firstByAtom(atom.Body)
}

// Lang returns the lang attribute of the <html> element.
func (d *Document) Lang() string {
	el := d.DocumentElement()
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Attr("lang"))
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) *Element {
	return d.Root().Query(selector)
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	return d.Root().QueryAll(selector)
}

// GetElementByID returns the element with the given id attribute.
func (d *Document) GetElementByID(id string) *Element {
	if d == nil || id == "" {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	found := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attrValue(n, "id") == id
	})
	return d.wrap(found)
}

// CreateElement builds a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	if d == nil {
		return nil
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
	return &Element{doc: d, node: node}
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil {
		return errors.New("dom: document is nil")
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) firstByAtom(a atom.Atom) *Element {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	found := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	})
	return d.wrap(found)
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}
