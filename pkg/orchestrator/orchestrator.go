package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-hydrate/internal/bundle/loader"
	"github.com/goliatone/go-hydrate/pkg/behaviors"
	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/emoji"
	"github.com/goliatone/go-hydrate/pkg/events"
	"github.com/goliatone/go-hydrate/pkg/hydrate"
	"github.com/goliatone/go-hydrate/pkg/i18n"
	"github.com/goliatone/go-hydrate/pkg/timestamp"
	"github.com/goliatone/go-hydrate/pkg/validation"
)

// DefaultUsernameSelector is the registration field checked for uniqueness.
const DefaultUsernameSelector = "input#user_account_attributes_username"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger sets the root logger. Subsystems log through named children.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBundleLoader injects a custom locale bundle loader.
func WithBundleLoader(loader i18n.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithBundleSourceFunc derives the bundle source from the negotiated locale
// when a request does not carry one.
func WithBundleSourceFunc(fn func(locale string) i18n.Source) Option {
	return func(o *Orchestrator) {
		o.bundleSource = fn
	}
}

// WithAvailableLocales restricts negotiation to the given locales.
func WithAvailableLocales(locales ...string) Option {
	return func(o *Orchestrator) {
		o.locales = append(o.locales, locales...)
	}
}

// WithMissingMessageHandler is called for message ids absent from the
// bundle.
func WithMissingMessageHandler(fn i18n.MissingHandler) Option {
	return func(o *Orchestrator) {
		o.onMissing = fn
	}
}

// WithLookup sets the uniqueness lookup. Without one the username validator
// is not installed.
func WithLookup(lookup validation.Lookup) Option {
	return func(o *Orchestrator) {
		o.lookup = lookup
	}
}

// WithLookupEndpoint builds an HTTP lookup against endpoint.
func WithLookupEndpoint(endpoint string, options ...validation.LookupOption) Option {
	return func(o *Orchestrator) {
		lookup, err := validation.NewHTTPLookup(endpoint, options...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: lookup: %w", err)
			return
		}
		o.lookup = lookup
	}
}

// WithDebounce overrides the username lookup debounce window.
func WithDebounce(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.debounce = d
	}
}

// WithScheduler replaces the timers used by validators and behaviours.
func WithScheduler(s validation.Scheduler) Option {
	return func(o *Orchestrator) {
		o.scheduler = s
	}
}

// WithEmojiConverter replaces the default shortcode converter.
func WithEmojiConverter(c emoji.Converter) Option {
	return func(o *Orchestrator) {
		o.converter = c
	}
}

// WithWidgetMounter sets the mounter for [data-component] placeholders.
func WithWidgetMounter(m hydrate.WidgetMounter) Option {
	return func(o *Orchestrator) {
		o.mounter = m
	}
}

// WithWidgets registers widgets on a WidgetRegistry used as the mounter.
func WithWidgets(widgets ...Widget) Option {
	return func(o *Orchestrator) {
		registry, ok := o.mounter.(*WidgetRegistry)
		if !ok {
			registry = NewWidgetRegistry()
			o.mounter = registry
		}
		for _, w := range widgets {
			if err := registry.Register(w); err != nil {
				o.initialiseErr = err
				return
			}
		}
	}
}

// WithSelectors overrides the username, password and confirmation field
// selectors. Empty values keep the defaults.
func WithSelectors(username, password, confirmation string) Option {
	return func(o *Orchestrator) {
		if username != "" {
			o.usernameSelector = username
		}
		if password != "" {
			o.passwordSelector = password
		}
		if confirmation != "" {
			o.confirmSelector = confirmation
		}
	}
}

// WithClipboard enables copy buttons.
func WithClipboard(c behaviors.Clipboard) Option {
	return func(o *Orchestrator) {
		o.clipboard = c
	}
}

// WithClock overrides time.Now for requests without an explicit Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator boots hydration for documents: it negotiates the locale,
// loads messages, runs the scanner and installs interactive handlers.
type Orchestrator struct {
	logger       *zap.Logger
	loader       i18n.Loader
	bundleSource func(locale string) i18n.Source
	locales      []string
	onMissing    i18n.MissingHandler

	lookup    validation.Lookup
	debounce  time.Duration
	scheduler validation.Scheduler

	converter emoji.Converter
	mounter   hydrate.WidgetMounter
	clipboard behaviors.Clipboard

	usernameSelector string
	passwordSelector string
	confirmSelector  string

	now           func() time.Time
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// collaborators are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:           zap.NewNop(),
		debounce:         validation.DefaultDebounce,
		usernameSelector: DefaultUsernameSelector,
		passwordSelector: validation.DefaultPrimarySelector,
		confirmSelector:  validation.DefaultConfirmSelector,
		now:              time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(i18n.NewLoaderOptions())
	}
	if o.scheduler == nil {
		o.scheduler = validation.RealScheduler()
	}
	if o.converter == nil {
		o.converter = emoji.New()
	}
}

// Request describes one document to hydrate.
type Request struct {
	// Document is the parsed page. Required.
	Document *dom.Document

	// Now is the reference instant. Zero means the orchestrator clock.
	Now time.Time

	// Location is the viewer's time zone. Nil means time.Local.
	Location *time.Location

	// Locale overrides the document's lang attribute.
	Locale string

	// Bundle bypasses the loader when callers already hold the messages.
	Bundle *i18n.Bundle

	// BundleSource identifies the bundle to load. Optional.
	BundleSource i18n.Source
}

// Page is a hydrated document with its handlers installed.
type Page struct {
	Document     *dom.Document
	Locale       string
	Messages     *i18n.Resolver
	Timestamps   timestamp.Context
	Delegator    *events.Delegator
	Report       hydrate.Report
	Username     *validation.RemoteValidator
	Confirmation *validation.ConfirmationChecker
	Behaviors    *behaviors.Set
}

// Dispatch routes an event through the page's delegator.
func (p *Page) Dispatch(ctx context.Context, ev *events.Event) int {
	if p == nil || p.Delegator == nil {
		return 0
	}
	return p.Delegator.Dispatch(ctx, ev)
}

// Close stops validator and behaviour timers and waits for lookups in flight.
func (p *Page) Close() {
	if p == nil {
		return
	}
	if p.Username != nil {
		p.Username.Close()
	}
	p.Behaviors.Close()
}

// Boot hydrates req.Document. A missing or broken bundle is logged and the
// built-in English defaults are used instead. Handlers are installed even
// when some nodes fail to hydrate; failures are listed in Page.Report.
func (o *Orchestrator) Boot(ctx context.Context, req Request) (*Page, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Document == nil {
		return nil, errors.New("orchestrator: document is required")
	}

	locale := o.negotiateLocale(req)
	logger := o.logger.With(zap.String("locale", locale))

	bundle := o.resolveBundle(ctx, req, locale, logger)
	resolver := i18n.NewResolver(bundle,
		i18n.WithLocale(locale),
		i18n.WithLogger(o.logger),
		i18n.WithMissingHandler(o.onMissing),
	)

	now := req.Now
	if now.IsZero() {
		now = o.now()
	}
	loc := req.Location
	if loc == nil {
		loc = time.Local
	}
	tctx := timestamp.NewContext(now, locale, loc, resolver)

	scanner := hydrate.NewScanner(
		hydrate.WithLogger(o.logger),
		hydrate.WithConverter(o.converter),
		hydrate.WithMounter(o.mounter),
	)
	report := scanner.Scan(ctx, req.Document, tctx)
	if n := len(report.Failures); n > 0 {
		logger.Warn("hydration completed with failures", zap.Int("failures", n))
	}

	page := &Page{
		Document:   req.Document,
		Locale:     locale,
		Messages:   resolver,
		Timestamps: tctx,
		Report:     report,
	}
	if err := o.install(page); err != nil {
		page.Close()
		return nil, err
	}
	return page, nil
}

func (o *Orchestrator) install(page *Page) error {
	delegator := events.NewDelegator(events.WithLogger(o.logger))
	page.Delegator = delegator

	if o.lookup != nil {
		username := validation.NewRemoteValidator(o.lookup,
			validation.WithDebounce(o.debounce),
			validation.WithScheduler(o.scheduler),
			validation.WithResolver(page.Messages),
			validation.WithRemoteLogger(o.logger),
		)
		page.Username = username
		err := delegator.On(o.usernameSelector, events.Input, func(_ context.Context, _ *events.Event, matched *dom.Element) {
			username.Input(matched)
		})
		if err != nil {
			return fmt.Errorf("orchestrator: install username validator: %w", err)
		}
	}

	confirmation := validation.NewConfirmationChecker(
		validation.WithSelectors(o.passwordSelector, o.confirmSelector),
		validation.WithConfirmationResolver(page.Messages),
	)
	page.Confirmation = confirmation
	if err := delegator.On(confirmation.Selector(), events.Input, confirmation.Handle); err != nil {
		return fmt.Errorf("orchestrator: install confirmation checker: %w", err)
	}
	if err := delegator.On(validation.BulkToggleSelector, events.Change, validation.HandleBulkToggle); err != nil {
		return fmt.Errorf("orchestrator: install bulk toggle: %w", err)
	}

	set := behaviors.New(
		behaviors.WithLogger(o.logger),
		behaviors.WithClipboard(o.clipboard),
		behaviors.WithScheduler(o.scheduler),
	)
	page.Behaviors = set
	if err := set.Register(delegator); err != nil {
		return fmt.Errorf("orchestrator: install behaviors: %w", err)
	}
	return nil
}

func (o *Orchestrator) negotiateLocale(req Request) string {
	locale := req.Locale
	if locale == "" {
		locale = req.Document.Lang()
	}
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	if len(o.locales) > 0 {
		locale = i18n.MatchLocale(locale, o.locales)
	}
	return locale
}

func (o *Orchestrator) resolveBundle(ctx context.Context, req Request, locale string, logger *zap.Logger) i18n.Bundle {
	if req.Bundle != nil {
		return *req.Bundle
	}
	src := req.BundleSource
	if src == nil && o.bundleSource != nil {
		src = o.bundleSource(locale)
	}
	if src == nil {
		return i18n.NewBundle(locale, nil)
	}

	bundle, err := o.loader.Load(ctx, src)
	if err != nil {
		logger.Warn("locale bundle unavailable, using defaults",
			zap.String("source", src.Location()),
			zap.Error(err),
		)
		return i18n.NewBundle(locale, nil)
	}
	return bundle
}
