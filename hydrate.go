// Package hydrate turns server rendered pages into their enhanced form:
// timestamps rendered for the viewer's locale and time zone, emoji shortcodes
// replaced, widget placeholders mounted and form validators installed.
//
// Most callers need only Document:
//
//	out, err := hydrate.Document(ctx, r, hydrate.Request{Now: time.Now()})
//
// The orchestrator package exposes the full configuration surface.
package hydrate

import (
	"bytes"
	"context"
	"io"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/hydrate"
	"github.com/goliatone/go-hydrate/pkg/orchestrator"
)

// Request aliases orchestrator.Request. Its Document field is filled by the
// helpers below.
type Request = orchestrator.Request

// Page aliases orchestrator.Page.
type Page = orchestrator.Page

// Report aliases hydrate.Report.
type Report = hydrate.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Boot parses r and hydrates it, returning the live page so callers can
// dispatch events against it. Close the page when done.
func Boot(ctx context.Context, r io.Reader, req Request, options ...orchestrator.Option) (*Page, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	req.Document = doc
	return orchestrator.New(options...).Boot(ctx, req)
}

// Document parses r, hydrates it and returns the rendered markup along with
// the scan report.
func Document(ctx context.Context, r io.Reader, req Request, options ...orchestrator.Option) ([]byte, Report, error) {
	page, err := Boot(ctx, r, req, options...)
	if err != nil {
		return nil, Report{}, err
	}
	defer page.Close()

	var buf bytes.Buffer
	if err := page.Document.Render(&buf); err != nil {
		return nil, page.Report, err
	}
	return buf.Bytes(), page.Report, nil
}
