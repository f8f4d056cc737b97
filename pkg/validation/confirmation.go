package validation

import (
	"context"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/events"
	"github.com/goliatone/go-hydrate/pkg/i18n"
)

// Reason explains why a confirmation verdict is invalid.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonExceedsMaxLength  Reason = "exceeds_maxlength"
	ReasonMismatch          Reason = "mismatching"
	DefaultPrimarySelector         = "#user_password"
	DefaultConfirmSelector         = "#user_password_confirmation"
)

// Verdict is the outcome of a confirmation check. Message is only filled by
// ConfirmationChecker, which localizes the reason.
type Verdict struct {
	Valid   bool
	Reason  Reason
	Message string
}

// CheckConfirmation compares a confirmation value against its primary field.
// A confirmation longer than primaryMaxLength always fails first, even when
// the primary is empty. Mismatch is only reported once the primary has a
// value. A negative primaryMaxLength disables the length check.
func CheckConfirmation(primary, confirmation string, primaryMaxLength int) Verdict {
	if primaryMaxLength >= 0 && dom.Length(confirmation) > primaryMaxLength {
		return Verdict{Reason: ReasonExceedsMaxLength}
	}
	if primary != "" && primary != confirmation {
		return Verdict{Reason: ReasonMismatch}
	}
	return Verdict{Valid: true}
}

// ConfirmationOption configures a ConfirmationChecker.
type ConfirmationOption func(*ConfirmationChecker)

// WithSelectors overrides the primary and confirmation selectors.
func WithSelectors(primary, confirmation string) ConfirmationOption {
	return func(c *ConfirmationChecker) {
		if primary != "" {
			c.primary = primary
		}
		if confirmation != "" {
			c.confirmation = confirmation
		}
	}
}

// WithConfirmationResolver sets the resolver used for localized messages.
func WithConfirmationResolver(r *i18n.Resolver) ConfirmationOption {
	return func(c *ConfirmationChecker) {
		c.resolver = r
	}
}

// ConfirmationChecker keeps a confirmation field's custom validity in sync
// with its primary field.
type ConfirmationChecker struct {
	primary      string
	confirmation string
	resolver     *i18n.Resolver
}

// NewConfirmationChecker builds a checker with the default selectors.
func NewConfirmationChecker(options ...ConfirmationOption) *ConfirmationChecker {
	c := &ConfirmationChecker{
		primary:      DefaultPrimarySelector,
		confirmation: DefaultConfirmSelector,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Selector returns the selector list the checker listens on.
func (c *ConfirmationChecker) Selector() string {
	return c.primary + ", " + c.confirmation
}

// Check evaluates the fields in doc and writes the verdict onto the
// confirmation field. Documents missing either field are left untouched.
func (c *ConfirmationChecker) Check(doc *dom.Document) Verdict {
	if doc == nil {
		return Verdict{Valid: true}
	}
	primary := doc.Query(c.primary)
	confirmation := doc.Query(c.confirmation)
	if primary == nil || confirmation == nil {
		return Verdict{Valid: true}
	}

	verdict := CheckConfirmation(primary.Value(), confirmation.Value(), primary.MaxLength())
	switch verdict.Reason {
	case ReasonExceedsMaxLength:
		verdict.Message = c.resolver.Resolve(MsgPasswordExceedsLength, nil)
	case ReasonMismatch:
		verdict.Message = c.resolver.Resolve(MsgPasswordMismatch, nil)
	}
	confirmation.SetCustomValidity(verdict.Message)
	return verdict
}

// Handle is an events.Handler that re-runs Check on input.
func (c *ConfirmationChecker) Handle(_ context.Context, ev *events.Event, _ *dom.Element) {
	if ev == nil || ev.Target == nil {
		return
	}
	c.Check(ev.Target.Document())
}
