package timestamp

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how a timestamp is displayed.
type Mode string

const (
	ModeAbsolute   Mode = "formatted"
	ModeTodayAware Mode = "relative-formatted"
	ModeTimeAgo    Mode = "time-ago"
)

// Modes lists every mode in scan order.
func Modes() []Mode {
	return []Mode{ModeAbsolute, ModeTodayAware, ModeTimeAgo}
}

// Class returns the CSS class that marks elements using this mode.
func (m Mode) Class() string {
	return string(m)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeAbsolute, ModeTodayAware, ModeTimeAgo:
		return true
	}
	return false
}

// ModeFromClass returns the mode named by a class attribute value, if any.
func ModeFromClass(class string) (Mode, bool) {
	for _, name := range strings.Fields(class) {
		if mode := Mode(name); mode.Valid() {
			return mode, true
		}
	}
	return "", false
}

// Marker is a timestamp found in the document: the raw datetime attribute
// and the rendering mode.
type Marker struct {
	Raw  string
	Mode Mode
}

// Result carries the text to display and the tooltip. Title is always the
// most precise rendering available.
type Result struct {
	Display string
	Title   string
}

// ParseError reports a datetime attribute that could not be understood.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("timestamp: cannot parse %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Parse reads a datetime attribute. Strings containing "T" carry a time of
// day; those without are date-only and resolve to midnight in loc. Local
// times without an offset are also read in loc.
func Parse(raw string, loc *time.Location) (time.Time, bool, error) {
	if loc == nil {
		loc = time.UTC
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false, &ParseError{Raw: raw, Err: fmt.Errorf("empty value")}
	}

	if !strings.Contains(value, "T") {
		t, err := time.ParseInLocation("2006-01-02", value, loc)
		if err != nil {
			return time.Time{}, false, &ParseError{Raw: raw, Err: err}
		}
		return t, false, nil
	}

	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, true, nil
		}
		lastErr = err
	}
	return time.Time{}, true, &ParseError{Raw: raw, Err: lastErr}
}
