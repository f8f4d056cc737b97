package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// Formatter renders instants with one locale's calendar rules in a fixed
// location. It has no mutable state.
type Formatter struct {
	rules    Rules
	location *time.Location
}

// New returns a formatter for locale using the embedded catalog. A nil
// location means UTC.
func New(locale string, location *time.Location) *Formatter {
	return NewWithRules(DefaultCatalog().Lookup(locale), location)
}

// NewWithRules builds a formatter from explicit rules.
func NewWithRules(rules Rules, location *time.Location) *Formatter {
	if location == nil {
		location = time.UTC
	}
	return &Formatter{rules: rules, location: location}
}

// Locale returns the locale of the underlying rules.
func (f *Formatter) Locale() string {
	return f.rules.Locale
}

// Location returns the time zone used for calendar fields.
func (f *Formatter) Location() *time.Location {
	return f.location
}

// DateTime renders the long date with hours and minutes, e.g.
// "January 1, 2024 at 10:00 AM".
func (f *Formatter) DateTime(t time.Time) string {
	return f.apply(f.rules.DatePatterns.DateTime, t)
}

// Date renders the abbreviated date, e.g. "Jan 1, 2024".
func (f *Formatter) Date(t time.Time) string {
	return f.apply(f.rules.DatePatterns.Date, t)
}

// Time renders hours and minutes, e.g. "10:00 AM".
func (f *Formatter) Time(t time.Time) string {
	return f.apply(f.rules.TimeFormat.Pattern, t)
}

// ShortDate renders month and day only, e.g. "Jan 1".
func (f *Formatter) ShortDate(t time.Time) string {
	pattern := f.rules.DatePatterns.ShortDate
	if pattern == "" {
		pattern = f.rules.DatePatterns.Date
	}
	return f.apply(pattern, t)
}

// ShortDateYear renders month, day and year, e.g. "Jan 1, 2023".
func (f *Formatter) ShortDateYear(t time.Time) string {
	pattern := f.rules.DatePatterns.ShortDateYear
	if pattern == "" {
		pattern = f.rules.DatePatterns.Date
	}
	return f.apply(pattern, t)
}

func (f *Formatter) apply(pattern string, t time.Time) string {
	t = t.In(f.location)

	var sb strings.Builder
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			sb.WriteString(pattern)
			break
		}
		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			sb.WriteString(pattern)
			break
		}
		sb.WriteString(pattern[:start])
		sb.WriteString(f.token(pattern[start+1:start+end], t))
		pattern = pattern[start+end+1:]
	}
	return sb.String()
}

func (f *Formatter) token(name string, t time.Time) string {
	switch name {
	case "month":
		return monthName(f.rules.MonthNames, t.Month())
	case "mon":
		return monthName(f.rules.MonthShortNames, t.Month())
	case "monthnum":
		return strconv.Itoa(int(t.Month()))
	case "day":
		return strconv.Itoa(t.Day())
	case "year":
		return strconv.Itoa(t.Year())
	case "time":
		return f.apply(f.rules.TimeFormat.Pattern, t)
	case "hour":
		return strconv.Itoa(f.hour(t))
	case "hour2":
		return pad2(f.hour(t))
	case "minute":
		return pad2(t.Minute())
	case "ampm":
		if f.rules.TimeFormat.Use24Hour {
			return ""
		}
		if t.Hour() < 12 {
			return f.rules.TimeFormat.AM
		}
		return f.rules.TimeFormat.PM
	default:
		return "{" + name + "}"
	}
}

func (f *Formatter) hour(t time.Time) int {
	h := t.Hour()
	if f.rules.TimeFormat.Use24Hour {
		return h
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return h
}

func monthName(names []string, m time.Month) string {
	idx := int(m) - 1
	if idx < 0 || idx >= len(names) {
		return strconv.Itoa(int(m))
	}
	return names[idx]
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
