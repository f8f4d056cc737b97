package hydrate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/emoji"
	"github.com/goliatone/go-hydrate/pkg/timestamp"
)

// EmojiSelector marks regions whose inner HTML goes through the emoji
// converter.
const EmojiSelector = ".emojify"

// Category names a kind of hydrated node in reports.
type Category string

const (
	CategoryEmoji  Category = "emojify"
	CategoryWidget Category = "widget"
)

// TimestampCategory returns the report category for a timestamp mode.
func TimestampCategory(mode timestamp.Mode) Category {
	return Category("time." + mode.Class())
}

// Failure records a node that could not be hydrated. The node keeps its
// server rendered content.
type Failure struct {
	Category Category
	Node     string
	Err      error
}

// Report summarizes a scan.
type Report struct {
	Processed  map[Category]int
	Failures   []Failure
	Components int
	Mounted    bool
}

// Count returns the number of nodes hydrated for category.
func (r Report) Count(category Category) int {
	return r.Processed[category]
}

// Err joins every failure into one error, or returns nil.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s %s: %w", f.Category, f.Node, f.Err))
	}
	return errors.Join(errs...)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for per node diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConverter replaces the default shortcode converter.
func WithConverter(c emoji.Converter) Option {
	return func(s *Scanner) {
		if c != nil {
			s.converter = c
		}
	}
}

// WithMounter sets the widget mounter. Without one, placeholders are left
// untouched.
func WithMounter(m WidgetMounter) Option {
	return func(s *Scanner) {
		s.mounter = m
	}
}

// Scanner hydrates documents. It holds no per document state and may be
// reused across documents.
type Scanner struct {
	converter emoji.Converter
	mounter   WidgetMounter
	logger    *zap.Logger
}

// NewScanner builds a scanner with the default emoji converter.
func NewScanner(options ...Option) *Scanner {
	s := &Scanner{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.converter == nil {
		s.converter = emoji.New()
	}
	s.logger = s.logger.Named("hydrate")
	return s
}

// Scan hydrates doc in one pass: emoji regions, then each timestamp mode,
// then widget placeholders. Running Scan again over its own output changes
// nothing because timestamps are always re-rendered from their datetime
// attribute and converted emoji leave no shortcodes behind.
func (s *Scanner) Scan(ctx context.Context, doc *dom.Document, tctx timestamp.Context) Report {
	report := Report{Processed: make(map[Category]int)}
	if doc == nil {
		return report
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, el := range doc.QueryAll(EmojiSelector) {
		if ctx.Err() != nil {
			return report
		}
		s.process(&report, CategoryEmoji, el, func() error {
			return s.emojify(el)
		})
	}

	for _, mode := range timestamp.Modes() {
		category := TimestampCategory(mode)
		for _, el := range doc.QueryAll("time." + mode.Class()) {
			if ctx.Err() != nil {
				return report
			}
			s.process(&report, category, el, func() error {
				return renderTimestamp(el, mode, tctx)
			})
		}
	}

	if ctx.Err() != nil {
		return report
	}
	s.mount(ctx, doc, &report)
	return report
}

func (s *Scanner) process(report *Report, category Category, el *dom.Element, fn func() error) {
	err := safely(fn)
	if err == nil {
		report.Processed[category]++
		return
	}
	node := describe(el)
	s.logger.Warn("hydration failed",
		zap.String("category", string(category)),
		zap.String("node", node),
		zap.Error(err),
	)
	report.Failures = append(report.Failures, Failure{Category: category, Node: node, Err: err})
}

func (s *Scanner) emojify(el *dom.Element) error {
	inner := el.InnerHTML()
	out := s.converter.Convert(inner)
	if out == inner {
		return nil
	}
	return el.SetInnerHTML(out)
}

func renderTimestamp(el *dom.Element, mode timestamp.Mode, tctx timestamp.Context) error {
	res, err := timestamp.Render(timestamp.Marker{Raw: el.Attr("datetime"), Mode: mode}, tctx)
	if err != nil {
		return err
	}
	el.SetAttr("title", res.Title)
	el.SetText(res.Display)
	return nil
}

func (s *Scanner) mount(ctx context.Context, doc *dom.Document, report *Report) {
	components := doc.QueryAll(ComponentSelector)
	report.Components = len(components)
	if len(components) == 0 {
		return
	}
	if s.mounter == nil {
		s.logger.Debug("widget placeholders found but no mounter configured", zap.Int("count", len(components)))
		return
	}

	err := safely(func() error {
		container := mountContainer(doc)
		if container == nil {
			return errors.New("hydrate: document has no body")
		}
		for _, component := range components {
			component.RemoveChildren()
		}
		return s.mounter.Mount(ctx, doc, components, container)
	})
	if err != nil {
		s.logger.Error("widget mount failed", zap.Int("count", len(components)), zap.Error(err))
		report.Failures = append(report.Failures, Failure{Category: CategoryWidget, Node: "body", Err: err})
		return
	}
	report.Mounted = true
	report.Processed[CategoryWidget] += len(components)
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hydrate: recovered panic: %v", r)
		}
	}()
	return fn()
}

func describe(el *dom.Element) string {
	if el == nil {
		return ""
	}
	desc := el.Tag()
	if id := el.ID(); id != "" {
		desc += "#" + id
	}
	if dt := el.Attr("datetime"); dt != "" {
		desc += fmt.Sprintf("[datetime=%q]", dt)
	}
	return desc
}
