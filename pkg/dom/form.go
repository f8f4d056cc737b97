package dom

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ValidationMessageAttr mirrors the custom validity message into the markup so
// it survives rendering the document back to HTML.
const ValidationMessageAttr = "data-validation-message"

// Type returns the lower-cased input type, defaulting to "text" for inputs.
func (e *Element) Type() string {
	if e == nil {
		return ""
	}
	typ := strings.ToLower(strings.TrimSpace(e.Attr("type")))
	if typ == "" && e.Tag() == "input" {
		return "text"
	}
	return typ
}

// Value returns the current control value. Inputs keep it in the value
// attribute, textareas in their text content.
func (e *Element) Value() string {
	if e == nil {
		return ""
	}
	if e.Tag() == "textarea" {
		return e.Text()
	}
	return e.Attr("value")
}

// SetValue updates the control value.
func (e *Element) SetValue(value string) {
	if e == nil {
		return
	}
	if e.Tag() == "textarea" {
		e.SetText(value)
		return
	}
	e.SetAttr("value", value)
}

// MaxLength returns the maxlength attribute, or -1 when absent or invalid,
// matching HTMLInputElement.maxLength.
func (e *Element) MaxLength() int {
	raw := strings.TrimSpace(e.Attr("maxlength"))
	if raw == "" {
		return -1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// Disabled reports whether the disabled attribute is present.
func (e *Element) Disabled() bool {
	return e.HasAttr("disabled")
}

// SetDisabled adds or removes the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.RemoveAttr("disabled")
}

// Checked reports whether the checked attribute is present.
func (e *Element) Checked() bool {
	return e.HasAttr("checked")
}

// SetChecked adds or removes the checked attribute.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "")
		return
	}
	e.RemoveAttr("checked")
}

// Form returns the owning form: the element named by the form attribute when
// present, the closest ancestor form otherwise.
func (e *Element) Form() *Element {
	if e == nil {
		return nil
	}
	if id := strings.TrimSpace(e.Attr("form")); id != "" {
		if form := e.doc.GetElementByID(id); form != nil && form.Tag() == "form" {
			return form
		}
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// CustomValidity returns the message set with SetCustomValidity.
func (e *Element) CustomValidity() string {
	if e == nil {
		return ""
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.doc.validity[e.node]
}

// SetCustomValidity attaches a validation message; an empty message marks the
// control valid again.
func (e *Element) SetCustomValidity(message string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if message == "" {
		delete(e.doc.validity, e.node)
		removeAttr(e.node, ValidationMessageAttr)
		return
	}
	e.doc.validity[e.node] = message
	setAttr(e.node, ValidationMessageAttr, message)
}

// Valid reports whether no custom validity message is set.
func (e *Element) Valid() bool {
	return e.CustomValidity() == ""
}

// Length counts UTF-16 code units, the unit maxlength constraints use.
// Characters outside the BMP (most emoji) count as two. Invalid UTF-8 bytes
// count as one U+FFFD each.
func Length(value string) int {
	n := 0
	for _, r := range value {
		n += utf16.RuneLen(r)
	}
	return n
}
