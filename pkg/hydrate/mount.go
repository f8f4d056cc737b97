package hydrate

import (
	"context"

	"github.com/goliatone/go-hydrate/pkg/dom"
)

const (
	// ComponentSelector marks widget placeholders.
	ComponentSelector = "[data-component]"
	// MountRootAttr tags the container appended to body for widgets.
	MountRootAttr = "data-widget-root"
)

// WidgetMounter renders interactive widgets for the placeholders found in a
// document. Components have had their fallback children removed by the time
// Mount is called; container is an empty div attached to body.
type WidgetMounter interface {
	Mount(ctx context.Context, doc *dom.Document, components []*dom.Element, container *dom.Element) error
}

// MounterFunc adapts a function to WidgetMounter.
type MounterFunc func(ctx context.Context, doc *dom.Document, components []*dom.Element, container *dom.Element) error

// Mount implements WidgetMounter.
func (fn MounterFunc) Mount(ctx context.Context, doc *dom.Document, components []*dom.Element, container *dom.Element) error {
	return fn(ctx, doc, components, container)
}

// mountContainer returns the widget root under body, creating it on first
// use so repeated scans reuse one container.
func mountContainer(doc *dom.Document) *dom.Element {
	body := doc.Body()
	if body == nil {
		return nil
	}
	if existing := body.Query("div[" + MountRootAttr + "]"); existing != nil && existing.Parent().Same(body) {
		existing.RemoveChildren()
		return existing
	}
	container := doc.CreateElement("div")
	container.SetAttr(MountRootAttr, "")
	body.AppendChild(container)
	return container
}
