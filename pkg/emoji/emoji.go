// Package emoji converts :shortcode: sequences in HTML fragments into Unicode
// emoji or custom emoji images.
package emoji

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark-emoji/definition"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter rewrites an HTML fragment, annotating emoji. Implementations must
// be pure and idempotent: converting their own output changes nothing.
type Converter interface {
	Convert(rawHTML string) string
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(rawHTML string) string

// Convert implements Converter.
func (fn ConverterFunc) Convert(rawHTML string) string {
	return fn(rawHTML)
}

// Custom describes a server provided emoji rendered as an image. StaticURL is
// shown by default and URL (possibly animated) on hover.
type Custom struct {
	Shortcode string
	URL       string
	StaticURL string
}

// Option configures a ShortcodeConverter.
type Option func(*ShortcodeConverter)

// WithCustom registers custom emoji. Custom shortcodes take precedence over
// the Unicode table.
func WithCustom(custom ...Custom) Option {
	return func(c *ShortcodeConverter) {
		for _, e := range custom {
			code := strings.Trim(strings.TrimSpace(e.Shortcode), ":")
			if code == "" || strings.TrimSpace(e.URL) == "" {
				continue
			}
			if e.StaticURL == "" {
				e.StaticURL = e.URL
			}
			e.Shortcode = code
			c.custom[code] = e
		}
	}
}

// WithDefinitions replaces the Unicode shortcode table.
func WithDefinitions(defs definition.Emojis) Option {
	return func(c *ShortcodeConverter) {
		c.defs = defs
	}
}

// ShortcodeConverter replaces :shortcode: in text nodes. Markup, attributes
// and the contents of script, style, code and pre elements are left alone.
type ShortcodeConverter struct {
	defs   definition.Emojis
	custom map[string]Custom
}

var shortcodePattern = regexp.MustCompile(`:([a-zA-Z0-9_+\-]+):`)

// New builds a converter using the GitHub shortcode table.
func New(options ...Option) *ShortcodeConverter {
	c := &ShortcodeConverter{
		defs:   definition.Github(),
		custom: make(map[string]Custom),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Convert implements Converter. Fragments that cannot be parsed are returned
// unchanged.
func (c *ShortcodeConverter) Convert(rawHTML string) string {
	if !strings.Contains(rawHTML, ":") {
		return rawHTML
	}
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(rawHTML), context)
	if err != nil {
		return rawHTML
	}
	for _, n := range nodes {
		context.AppendChild(n)
	}

	changed := false
	c.walk(context, &changed)
	if !changed {
		return rawHTML
	}

	var buf bytes.Buffer
	for n := context.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return rawHTML
		}
	}
	return buf.String()
}

func (c *ShortcodeConverter) walk(n *html.Node, changed *bool) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		switch child.Type {
		case html.TextNode:
			if c.replaceText(child) {
				*changed = true
			}
		case html.ElementNode:
			switch child.DataAtom {
			case atom.Script, atom.Style, atom.Code, atom.Pre:
			default:
				c.walk(child, changed)
			}
		}
		child = next
	}
}

// replaceText splits a text node around recognised shortcodes.
func (c *ShortcodeConverter) replaceText(text *html.Node) bool {
	matches := shortcodePattern.FindAllStringSubmatchIndex(text.Data, -1)
	if len(matches) == 0 {
		return false
	}

	var (
		out     []*html.Node
		pending strings.Builder
		last    int
		changed bool
	)
	flush := func() {
		if pending.Len() > 0 {
			out = append(out, &html.Node{Type: html.TextNode, Data: pending.String()})
			pending.Reset()
		}
	}

	for _, m := range matches {
		code := text.Data[m[2]:m[3]]
		pending.WriteString(text.Data[last:m[0]])
		last = m[1]

		if custom, ok := c.custom[code]; ok {
			if img := customImage(custom); img != nil {
				flush()
				out = append(out, img)
				changed = true
				continue
			}
		}
		if c.defs != nil {
			if e, ok := c.defs.Get(code); ok && len(e.Unicode) > 0 {
				pending.WriteString(string(e.Unicode))
				changed = true
				continue
			}
		}
		pending.WriteString(text.Data[m[0]:m[1]])
	}
	pending.WriteString(text.Data[last:])
	flush()

	if !changed {
		return false
	}
	parent := text.Parent
	for _, n := range out {
		parent.InsertBefore(n, text)
	}
	parent.RemoveChild(text)
	return true
}

var (
	imagePolicyOnce sync.Once
	imagePolicy     *bluemonday.Policy
)

func customImagePolicy() *bluemonday.Policy {
	imagePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("img")
		policy.AllowAttrs("class", "alt", "title", "src", "draggable").OnElements("img")
		policy.AllowDataAttributes()
		policy.AllowURLSchemes("http", "https")
		policy.AllowRelativeURLs(true)
		policy.RequireParseableURLs(true)
		imagePolicy = policy
	})
	return imagePolicy
}

// customImage renders the image for a custom emoji through the sanitiser so a
// hostile URL or shortcode can never inject markup.
func customImage(e Custom) *html.Node {
	shortcode := ":" + e.Shortcode + ":"
	img := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr: []html.Attribute{
			{Key: "draggable", Val: "false"},
			{Key: "class", Val: "emojione custom-emoji"},
			{Key: "alt", Val: shortcode},
			{Key: "title", Val: shortcode},
			{Key: "src", Val: e.StaticURL},
			{Key: "data-original", Val: e.URL},
			{Key: "data-static", Val: e.StaticURL},
		},
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, img); err != nil {
		return nil
	}
	clean := customImagePolicy().Sanitize(buf.String())
	if !strings.Contains(clean, "src=") {
		return nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
	nodes, err := html.ParseFragment(strings.NewReader(clean), context)
	if err != nil || len(nodes) != 1 || nodes[0].DataAtom != atom.Img {
		return nil
	}
	return nodes[0]
}
