// Package hydrate walks a server rendered document once and rewrites the
// regions marked for progressive enhancement: emoji shortcodes, timestamps in
// the viewer's locale, and placeholders for interactive widgets. Every node
// is processed in isolation so one bad value never stops the rest of the
// page.
package hydrate
