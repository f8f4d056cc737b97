package timestamp

import (
	"fmt"
	"time"

	"github.com/goliatone/go-hydrate/pkg/datefmt"
	"github.com/goliatone/go-hydrate/pkg/i18n"
)

// Context carries everything rendering depends on besides the marker itself.
type Context struct {
	// Now is the reference instant.
	Now time.Time
	// Year is the reference year for short date phrasing. Zero means the
	// year of Now in the formatter location.
	Year int
	// Dates formats calendar fields and defines the location used for day
	// comparisons.
	Dates *datefmt.Formatter
	// Messages resolves localized phrases.
	Messages *i18n.Resolver
}

// NewContext builds a Context for locale in loc with messages from resolver.
func NewContext(now time.Time, locale string, loc *time.Location, resolver *i18n.Resolver) Context {
	return Context{
		Now:      now,
		Dates:    datefmt.New(locale, loc),
		Messages: resolver,
	}
}

func (c Context) normalize() Context {
	if c.Dates == nil {
		locale := i18n.DefaultLocale
		if c.Messages != nil && c.Messages.Locale() != "" {
			locale = c.Messages.Locale()
		}
		c.Dates = datefmt.New(locale, time.UTC)
	}
	if c.Messages == nil {
		c.Messages = i18n.NewResolver(i18n.NewBundle(c.Dates.Locale(), nil))
	}
	if c.Year == 0 {
		c.Year = c.Now.In(c.Dates.Location()).Year()
	}
	return c
}

// Location returns the time zone used for calendar comparisons.
func (c Context) Location() *time.Location {
	if c.Dates == nil {
		return time.UTC
	}
	return c.Dates.Location()
}

// Render parses the marker and produces its display text and tooltip.
func Render(m Marker, ctx Context) (Result, error) {
	ctx = ctx.normalize()

	t, timeGiven, err := Parse(m.Raw, ctx.Location())
	if err != nil {
		return Result{}, err
	}

	result := Result{Title: Title(t, timeGiven, ctx)}
	switch m.Mode {
	case ModeAbsolute:
		result.Display = result.Title
	case ModeTodayAware:
		result.Display = TodayAware(t, ctx)
	case ModeTimeAgo:
		result.Display = TimeAgo(t, ctx, TimeAgoOptions{TimeGiven: timeGiven})
	default:
		return Result{}, fmt.Errorf("timestamp: unknown mode %q", m.Mode)
	}
	return result, nil
}

// Title is the most precise rendering: date and time when the source had a
// time of day, the date alone otherwise.
func Title(t time.Time, timeGiven bool, ctx Context) string {
	ctx = ctx.normalize()
	if timeGiven {
		return ctx.Dates.DateTime(t)
	}
	return ctx.Dates.Date(t)
}

// TodayAware renders "Today at {time}" when t falls on the same calendar day
// as ctx.Now, and the absolute date otherwise.
func TodayAware(t time.Time, ctx Context) string {
	ctx = ctx.normalize()
	if SameDay(t, ctx.Now, ctx.Location()) {
		return ctx.Messages.Resolve(MsgTodayAt, i18n.Values{"time": ctx.Dates.Time(t)})
	}
	return ctx.Dates.Date(t)
}

// SameDay compares year, month and day of a and b in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
