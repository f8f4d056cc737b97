package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/hydrate"
)

// Widget renders one kind of interactive component, selected by the
// data-component attribute of its placeholder.
type Widget interface {
	Name() string
	Mount(ctx context.Context, component *dom.Element, container *dom.Element) error
}

// WidgetRegistry stores widgets by name and mounts placeholders against
// them. It satisfies hydrate.WidgetMounter.
type WidgetRegistry struct {
	mu      sync.RWMutex
	widgets map[string]Widget
}

var _ hydrate.WidgetMounter = (*WidgetRegistry)(nil)

// NewWidgetRegistry creates an empty registry.
func NewWidgetRegistry() *WidgetRegistry {
	return &WidgetRegistry{
		widgets: make(map[string]Widget),
	}
}

// Register adds a widget by its Name(). Duplicate names return an error.
func (r *WidgetRegistry) Register(widget Widget) error {
	if widget == nil {
		return fmt.Errorf("orchestrator: widget is required")
	}
	name := normalizeWidgetName(widget.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: widget name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[name]; exists {
		return fmt.Errorf("orchestrator: widget %q already registered", name)
	}
	r.widgets[name] = widget
	return nil
}

// MustRegister panics on registration failure.
func (r *WidgetRegistry) MustRegister(widget Widget) {
	if err := r.Register(widget); err != nil {
		panic(err)
	}
}

// Get retrieves a widget by name.
func (r *WidgetRegistry) Get(name string) (Widget, error) {
	key := normalizeWidgetName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: widget name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	widget, ok := r.widgets[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: widget %q not found", key)
	}
	return widget, nil
}

// List returns the sorted widget names.
func (r *WidgetRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a widget is registered.
func (r *WidgetRegistry) Has(name string) bool {
	key := normalizeWidgetName(name)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.widgets[key]
	return ok
}

// Mount implements hydrate.WidgetMounter. Every placeholder is mounted even
// when an earlier one fails; the failures are joined.
func (r *WidgetRegistry) Mount(ctx context.Context, _ *dom.Document, components []*dom.Element, container *dom.Element) error {
	var errs []error
	for _, component := range components {
		name := component.Data("component")
		widget, err := r.Get(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := widget.Mount(ctx, component, container); err != nil {
			errs = append(errs, fmt.Errorf("orchestrator: mount %q: %w", normalizeWidgetName(name), err))
		}
	}
	return errors.Join(errs...)
}

func normalizeWidgetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
