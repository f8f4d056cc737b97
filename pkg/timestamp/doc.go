// Package timestamp classifies machine readable timestamps and renders them
// for display. Three modes exist: absolute dates, "today aware" dates that
// switch to "Today at 10:00 AM" on the current calendar day, and relative
// "5 minutes ago" phrasing. Rendering is a pure function of the marker and an
// explicit Context carrying the reference instant, location, date formatter
// and message resolver.
package timestamp
