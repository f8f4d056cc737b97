// Package validation implements the client side form checks installed during
// hydration: a debounced remote uniqueness check with stale response
// suppression, a password confirmation cross-check, and bulk enabling of
// grouped inputs behind a checkbox.
package validation
