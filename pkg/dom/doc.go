// Package dom provides a small, concurrency-safe document model on top of
// golang.org/x/net/html. It exposes the subset of the browser DOM that page
// hydration and form validation need: CSS selection, text and attribute
// access, inner HTML replacement and form control state such as values,
// disabled flags and custom validity messages.
package dom
