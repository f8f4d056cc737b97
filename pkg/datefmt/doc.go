// Package datefmt formats dates and times with per-locale calendar rules
// (month names, pattern order, 12 or 24 hour clocks). Rules ship as embedded
// YAML and can be extended through Catalog.Add.
package datefmt
