package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle to a node inside a Document. Handles are cheap and may
// be compared with Same; two handles for the same node are interchangeable.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node exposes the underlying node. Callers must not mutate it without
// holding the document lock, so prefer the Element methods.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	if e == nil {
		return nil
	}
	return e.doc
}

// Same reports whether both handles point at the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	return e.node == other.node
}

// Tag returns the lower-case tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e == nil || e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Attr returns the attribute value or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return attrValue(e.node, name)
}

// HasAttr reports whether the attribute is present, even if empty.
func (e *Element) HasAttr(name string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	_, ok := attrIndex(e.node, name)
	return ok
}

// Data returns a data-* attribute using its dataset name, e.g. "original-src".
func (e *Element) Data(name string) string {
	return e.Attr("data-" + name)
}

// SetAttr creates or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

// RemoveAttr deletes an attribute when present.
func (e *Element) RemoveAttr(name string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.node, name)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for _, class := range strings.Fields(attrValue(e.node, "class")) {
		if class == name {
			return true
		}
	}
	return false
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if e == nil || strings.TrimSpace(name) == "" {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	classes := strings.Fields(attrValue(e.node, "class"))
	out := classes[:0]
	present := false
	for _, class := range classes {
		if class == name {
			present = true
			if !on {
				continue
			}
		}
		out = append(out, class)
	}
	if on && !present {
		out = append(out, name)
	}
	if len(out) == 0 {
		removeAttr(e.node, "class")
		return
	}
	setAttr(e.node, "class", strings.Join(out, " "))
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	if e == nil {
		return ""
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// SetInnerHTML parses markup in the context of this element and replaces its
// children with the result.
func (e *Element) SetInnerHTML(markup string) error {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	context := e.node
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "div"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return err
	}
	removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Parent returns the parent element, or nil at the document root.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if e.node.Parent == nil {
		return nil
	}
	return e.doc.wrap(e.node.Parent)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// RemoveChildren detaches every child node.
func (e *Element) RemoveChildren() {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeChildren(e.node)
}

// AppendChild moves child under e. A child that already has a parent is
// detached first.
func (e *Element) AppendChild(child *Element) {
	if e == nil || child == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Matches reports whether the element matches selector. Invalid selectors
// never match.
func (e *Element) Matches(selector string) bool {
	if e == nil || e.node.Type != html.ElementNode {
		return false
	}
	sel, err := Compile(selector)
	if err != nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return sel.Match(e.node)
}

// Closest walks from e up through its ancestors and returns the first element
// matching selector.
func (e *Element) Closest(selector string) *Element {
	if e == nil {
		return nil
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Query returns the first descendant matching selector.
func (e *Element) Query(selector string) *Element {
	all := e.QueryAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QueryAll returns descendants matching selector in document order. The
// element itself is never included.
func (e *Element) QueryAll(selector string) []*Element {
	if e == nil {
		return nil
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()

	var out []*Element
	for _, n := range sel.MatchAll(e.node) {
		if n == e.node {
			continue
		}
		out = append(out, e.doc.wrap(n))
	}
	return out
}

func attrIndex(n *html.Node, name string) (int, bool) {
	if n == nil {
		return -1, false
	}
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return i, true
		}
	}
	return -1, false
}

func attrValue(n *html.Node, name string) string {
	if idx, ok := attrIndex(n, name); ok {
		return n.Attr[idx].Val
	}
	return ""
}

func setAttr(n *html.Node, name, value string) {
	if idx, ok := attrIndex(n, name); ok {
		n.Attr[idx].Val = value
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	if idx, ok := attrIndex(n, name); ok {
		n.Attr = append(n.Attr[:idx], n.Attr[idx+1:]...)
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
