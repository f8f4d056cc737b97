package i18n

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Message identifies a translatable string and the template used when the
// bundle has no entry for it.
type Message struct {
	ID      string
	Default string
}

// MissingHandler is notified when a message id is absent from the bundle.
type MissingHandler func(locale, id string)

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger routes FormatError diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMissingHandler registers a hook for ids missing from the bundle.
func WithMissingHandler(fn MissingHandler) Option {
	return func(r *Resolver) {
		r.onMissing = fn
	}
}

// WithLocale overrides the locale used for plural rules and number
// formatting. By default the bundle locale is used.
func WithLocale(locale string) Option {
	return func(r *Resolver) {
		r.locale = strings.TrimSpace(locale)
	}
}

// Resolver produces localized strings from a Bundle. It holds no mutable
// state besides a cache of compiled templates and may be shared freely.
type Resolver struct {
	bundle    Bundle
	locale    string
	tag       language.Tag
	logger    *zap.Logger
	onMissing MissingHandler
	compiled  sync.Map // template -> *compiled
}

// NewResolver builds a resolver for bundle.
func NewResolver(bundle Bundle, options ...Option) *Resolver {
	r := &Resolver{
		bundle: bundle,
		locale: bundle.Locale(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.tag = parseTag(r.locale)
	r.logger = r.logger.Named("i18n")
	return r
}

// Locale returns the active locale code.
func (r *Resolver) Locale() string {
	if r == nil {
		return ""
	}
	return r.locale
}

// Tag returns the parsed language tag for the active locale.
func (r *Resolver) Tag() language.Tag {
	if r == nil {
		return language.English
	}
	return r.tag
}

// Resolve returns the localized string for msg. The bundle template wins when
// present; otherwise msg.Default is used. If formatting fails the default
// template is tried, and as a last resort the raw default is returned
// unformatted.
func (r *Resolver) Resolve(msg Message, values Values) string {
	if r == nil {
		return msg.Default
	}

	template := msg.Default
	if id := strings.TrimSpace(msg.ID); id != "" {
		if tpl, ok := r.bundle.Lookup(id); ok {
			template = tpl
		} else if r.onMissing != nil {
			r.onMissing(r.locale, id)
		}
	}

	out, err := r.Format(template, values)
	if err == nil {
		return out
	}
	r.logger.Warn("message format failed",
		zap.String("id", msg.ID),
		zap.String("locale", r.locale),
		zap.Error(err),
	)

	if template != msg.Default {
		if out, err := r.Format(msg.Default, values); err == nil {
			return out
		}
	}
	return msg.Default
}

// Format compiles template against the active locale and substitutes values.
// Errors are always *FormatError.
func (r *Resolver) Format(template string, values Values) (string, error) {
	c, err := r.compile(template)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := newFormatter(r.Tag(), template).render(c.nodes, values, nil, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Translate satisfies the Translator contract used by template helpers:
// args may contain a single Values or map[string]any.
func (r *Resolver) Translate(_ string, key string, args ...any) (string, error) {
	if r == nil {
		return "", errors.New("i18n: resolver is nil")
	}
	tpl, ok := r.bundle.Lookup(strings.TrimSpace(key))
	if !ok {
		return "", errors.New("i18n: missing translation " + key)
	}
	var values Values
	for _, arg := range args {
		switch v := arg.(type) {
		case Values:
			values = v
		case map[string]any:
			values = Values(v)
		}
	}
	return r.Format(tpl, values)
}

func (r *Resolver) compile(template string) (*compiled, error) {
	if r != nil {
		if cached, ok := r.compiled.Load(template); ok {
			return cached.(*compiled), nil
		}
	}
	c, err := compile(template)
	if err != nil {
		return nil, err
	}
	if r != nil {
		r.compiled.Store(template, c)
	}
	return c, nil
}
