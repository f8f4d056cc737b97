// Package behaviors holds the small delegated page handlers installed next to
// the validators: honeypot clearing, custom emoji animation on hover, avatar
// previews, the collapsible sidebar, expandable rules and copy buttons.
package behaviors
