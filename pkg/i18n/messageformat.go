package i18n

import (
	"strconv"
	"strings"
	"unicode"
)

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeArg
	nodeNumber
	nodePlural
	nodeSelect
	nodePound
)

type node struct {
	kind    nodeKind
	text    string
	name    string
	offset  float64
	options []option
}

type option struct {
	key     string
	message []node
}

// compiled is an immutable parsed template.
type compiled struct {
	source string
	nodes  []node
}

// compile parses an ICU MessageFormat template. The result is safe to share
// between goroutines.
func compile(template string) (*compiled, error) {
	p := &parser{src: []rune(template), template: template}
	nodes, err := p.message(0, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.fail("unexpected '}'")
	}
	return &compiled{source: template, nodes: nodes}, nil
}

type parser struct {
	src      []rune
	pos      int
	template string
}

func (p *parser) fail(reason string) error {
	return &FormatError{Template: p.template, Offset: p.pos, Reason: reason}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// message reads literal text and arguments until an unmatched '}' (left
// unconsumed for the caller) or the end of input.
func (p *parser) message(depth int, inPlural bool) ([]node, error) {
	var (
		nodes []node
		text  strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, node{kind: nodeText, text: text.String()})
			text.Reset()
		}
	}

	for !p.eof() {
		r := p.src[p.pos]
		switch {
		case r == '\'':
			p.quoted(&text, inPlural)
		case r == '{':
			flush()
			arg, err := p.argument(depth + 1)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, arg)
		case r == '}':
			if depth == 0 {
				return nil, p.fail("unexpected '}'")
			}
			flush()
			return nodes, nil
		case r == '#' && inPlural:
			flush()
			nodes = append(nodes, node{kind: nodePound})
			p.pos++
		default:
			text.WriteRune(r)
			p.pos++
		}
	}
	if depth > 0 {
		return nil, p.fail("unterminated argument")
	}
	flush()
	return nodes, nil
}

// quoted handles ICU apostrophe rules: '' is a literal apostrophe and an
// apostrophe before a syntax character starts a quoted run ending at the next
// lone apostrophe. Any other apostrophe is literal.
func (p *parser) quoted(text *strings.Builder, inPlural bool) {
	p.pos++
	if p.eof() {
		text.WriteRune('\'')
		return
	}
	next := p.src[p.pos]
	if next == '\'' {
		text.WriteRune('\'')
		p.pos++
		return
	}
	if next != '{' && next != '}' && !(inPlural && next == '#') {
		text.WriteRune('\'')
		return
	}
	for !p.eof() {
		r := p.src[p.pos]
		if r == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				text.WriteRune('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		text.WriteRune(r)
		p.pos++
	}
}

func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() {
		r := p.src[p.pos]
		if unicode.IsSpace(r) || r == ',' || r == '{' || r == '}' {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) argument(depth int) (node, error) {
	p.pos++ // '{'
	p.skipSpace()
	name := p.identifier()
	if name == "" {
		return node{}, p.fail("missing argument name")
	}
	p.skipSpace()

	switch p.peek() {
	case '}':
		p.pos++
		return node{kind: nodeArg, name: name}, nil
	case ',':
		p.pos++
	default:
		return node{}, p.fail("expected ',' or '}' after argument name")
	}

	p.skipSpace()
	typ := strings.ToLower(p.identifier())
	p.skipSpace()

	switch typ {
	case "number":
		// Styles such as {n, number, integer} are accepted and ignored.
		if p.peek() == ',' {
			p.pos++
			for !p.eof() && p.peek() != '}' {
				p.pos++
			}
		}
		if p.peek() != '}' {
			return node{}, p.fail("unterminated number argument")
		}
		p.pos++
		return node{kind: nodeNumber, name: name}, nil
	case "plural", "selectordinal", "select":
		if p.peek() != ',' {
			return node{}, p.fail("expected ',' before " + typ + " options")
		}
		p.pos++
		n := node{kind: nodePlural, name: name}
		if typ == "select" {
			n.kind = nodeSelect
		}
		if err := p.options(&n, depth); err != nil {
			return node{}, err
		}
		return n, nil
	case "":
		return node{}, p.fail("missing argument type")
	default:
		return node{}, p.fail("unsupported argument type " + strconv.Quote(typ))
	}
}

func (p *parser) options(n *node, depth int) error {
	hasOther := false
	for {
		p.skipSpace()
		if p.eof() {
			return p.fail("unterminated options")
		}
		if p.peek() == '}' {
			p.pos++
			break
		}

		key := p.identifier()
		if n.kind == nodePlural && strings.HasPrefix(key, "offset:") {
			raw := strings.TrimPrefix(key, "offset:")
			if raw == "" {
				p.skipSpace()
				raw = p.identifier()
			}
			offset, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p.fail("invalid plural offset")
			}
			n.offset = offset
			continue
		}
		if key == "" {
			return p.fail("missing option key")
		}
		p.skipSpace()
		if p.peek() != '{' {
			return p.fail("expected '{' after option " + strconv.Quote(key))
		}
		p.pos++
		msg, err := p.message(depth, n.kind == nodePlural)
		if err != nil {
			return err
		}
		p.pos++ // '}'
		if key == "other" {
			hasOther = true
		}
		n.options = append(n.options, option{key: key, message: msg})
	}
	if !hasOther {
		return p.fail("missing 'other' option")
	}
	return nil
}
