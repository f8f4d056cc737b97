// Package events implements document level event delegation: handlers are
// registered as (selector, event type) pairs and an event is routed to every
// handler whose selector matches the target or one of its ancestors.
package events

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/pkg/dom"
)

// Common event types.
const (
	Input     = "input"
	Change    = "change"
	Click     = "click"
	Submit    = "submit"
	KeyDown   = "keydown"
	MouseOver = "mouseover"
	MouseOut  = "mouseout"
)

// Event is a user interaction routed through the Delegator.
type Event struct {
	Type   string
	Target *dom.Element
	// Key is set for keyboard events.
	Key string
	// Files lists object URLs for file inputs on change events.
	Files []string

	prevented bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	if e != nil {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a handler cancelled the default action.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.prevented
}

// Handler reacts to a delegated event. Matched is the element that satisfied
// the selector, which may be an ancestor of ev.Target.
type Handler func(ctx context.Context, ev *Event, matched *dom.Element)

type registration struct {
	selector  string
	eventType string
	handler   Handler
}

// Option configures a Delegator.
type Option func(*Delegator)

// WithLogger sets the logger used for handler failures.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Delegator) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Delegator stores registrations and dispatches events against them. It is
// safe for concurrent use.
type Delegator struct {
	mu            sync.RWMutex
	registrations []registration
	logger        *zap.Logger
}

// NewDelegator builds an empty delegator.
func NewDelegator(options ...Option) *Delegator {
	d := &Delegator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	d.logger = d.logger.Named("events")
	return d
}

// On registers handler for eventType on elements matching selector. Selector
// lists ("#a, #b") are allowed.
func (d *Delegator) On(selector, eventType string, handler Handler) error {
	selector = strings.TrimSpace(selector)
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if handler == nil {
		return fmt.Errorf("events: handler is required")
	}
	if eventType == "" {
		return fmt.Errorf("events: event type is required")
	}
	if _, err := dom.Compile(selector); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.registrations = append(d.registrations, registration{
		selector:  selector,
		eventType: eventType,
		handler:   handler,
	})
	return nil
}

// MustOn panics when registration fails. Useful for init-time wiring.
func (d *Delegator) MustOn(selector, eventType string, handler Handler) {
	if err := d.On(selector, eventType, handler); err != nil {
		panic(err)
	}
}

// Len returns the number of registrations.
func (d *Delegator) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.registrations)
}

// Dispatch routes ev to matching handlers in registration order and returns
// how many ran. A panicking handler is logged and does not stop the others.
func (d *Delegator) Dispatch(ctx context.Context, ev *Event) int {
	if ev == nil || ev.Target == nil {
		return 0
	}
	eventType := strings.ToLower(strings.TrimSpace(ev.Type))

	d.mu.RLock()
	regs := append([]registration(nil), d.registrations...)
	d.mu.RUnlock()

	ran := 0
	for _, reg := range regs {
		if reg.eventType != eventType {
			continue
		}
		matched := ev.Target.Closest(reg.selector)
		if matched == nil {
			continue
		}
		d.invoke(ctx, reg, ev, matched)
		ran++
	}
	return ran
}

func (d *Delegator) invoke(ctx context.Context, reg registration, ev *Event, matched *dom.Element) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("event handler panicked",
				zap.String("selector", reg.selector),
				zap.String("event", reg.eventType),
				zap.Any("panic", rec),
			)
		}
	}()
	reg.handler(ctx, ev, matched)
}
