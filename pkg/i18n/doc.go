// Package i18n resolves localized, parameterised messages for page hydration.
//
// A Bundle maps message ids to ICU MessageFormat templates for one locale. The
// Resolver picks the bundle template (or the caller supplied default), compiles
// it against the bundle locale and substitutes values. Supported syntax covers
// simple arguments ({name}), numbers ({n, number}), plurals with exact and CLDR
// categories ({n, plural, =0 {none} one {# item} other {# items}}), selects and
// apostrophe quoting. Plural categories and number grouping come from
// golang.org/x/text.
//
// Resolution never fails: malformed templates are reported through the
// configured logger and the raw default template is returned instead.
package i18n
