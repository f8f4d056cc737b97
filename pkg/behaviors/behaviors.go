package behaviors

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/events"
	"github.com/goliatone/go-hydrate/pkg/validation"
)

const (
	RegistrationFormSelector = "#registration_new_user, #new_user"
	CustomEmojiSelector      = "img.custom-emoji"
	AvatarInputSelector      = "#edit_profile input[type=file]"
	SidebarToggleSelector    = ".sidebar__toggle__icon"
	RulesButtonSelector      = ".rules-list button"
	CopyButtonSelector       = ".input-copy button"

	// CopiedFlash is how long a copy button's wrapper keeps the "copied" class.
	CopiedFlash = 700 * time.Millisecond
)

// HoneypotFieldIDs are the registration inputs bots tend to fill. They are
// emptied right before submit in case an autofill extension touched them.
var HoneypotFieldIDs = []string{
	"user_website",
	"user_confirm_password",
	"registration_user_website",
	"registration_user_confirm_password",
}

// Clipboard receives text from copy buttons.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(ctx context.Context, text string) error

// WriteText implements Clipboard.
func (fn ClipboardFunc) WriteText(ctx context.Context, text string) error {
	return fn(ctx, text)
}

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClipboard enables copy buttons. Without a clipboard they do nothing.
func WithClipboard(c Clipboard) Option {
	return func(s *Set) {
		s.clipboard = c
	}
}

// WithScheduler replaces the timer used to clear the copied flash.
func WithScheduler(sched validation.Scheduler) Option {
	return func(s *Set) {
		if sched != nil {
			s.scheduler = sched
		}
	}
}

// Set bundles the behaviours and their collaborators.
type Set struct {
	clipboard Clipboard
	scheduler validation.Scheduler
	logger    *zap.Logger

	mu     sync.Mutex
	flash  validation.Timer
	closed bool
}

// New builds a behaviour set.
func New(options ...Option) *Set {
	s := &Set{
		scheduler: validation.RealScheduler(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.logger = s.logger.Named("behaviors")
	return s
}

// Register installs every behaviour on d.
func (s *Set) Register(d *events.Delegator) error {
	if d == nil {
		return fmt.Errorf("behaviors: delegator is required")
	}
	bindings := []struct {
		selector  string
		eventType string
		handler   events.Handler
	}{
		{RegistrationFormSelector, events.Submit, s.clearHoneypots},
		{CustomEmojiSelector, events.MouseOver, showOriginalEmoji},
		{CustomEmojiSelector, events.MouseOut, showStaticEmoji},
		{AvatarInputSelector, events.Change, previewAvatar},
		{SidebarToggleSelector, events.Click, toggleSidebarOnClick},
		{SidebarToggleSelector, events.KeyDown, toggleSidebarOnKey},
		{RulesButtonSelector, events.Click, toggleRule},
		{CopyButtonSelector, events.Click, s.copyInput},
	}
	for _, b := range bindings {
		if err := d.On(b.selector, b.eventType, b.handler); err != nil {
			return err
		}
	}
	return nil
}

// ClearHoneypots empties every honeypot input present in doc and returns how
// many were found.
func ClearHoneypots(doc *dom.Document) int {
	if doc == nil {
		return 0
	}
	cleared := 0
	for _, id := range HoneypotFieldIDs {
		if field := doc.Query("input#" + id); field != nil {
			field.SetValue("")
			cleared++
		}
	}
	return cleared
}

func (s *Set) clearHoneypots(_ context.Context, _ *events.Event, matched *dom.Element) {
	if n := ClearHoneypots(matched.Document()); n > 0 {
		s.logger.Debug("cleared honeypot fields", zap.Int("count", n))
	}
}

func showOriginalEmoji(_ context.Context, _ *events.Event, img *dom.Element) {
	if src := img.Data("original"); src != "" {
		img.SetAttr("src", src)
	}
}

func showStaticEmoji(_ context.Context, _ *events.Event, img *dom.Element) {
	if src := img.Data("static"); src != "" {
		img.SetAttr("src", src)
	}
}

// previewAvatar points img#<input id>-preview at the chosen file, or back at
// its original source when the selection was cleared.
func previewAvatar(_ context.Context, ev *events.Event, input *dom.Element) {
	id := input.ID()
	if id == "" {
		return
	}
	avatar := input.Document().Query("img#" + id + "-preview")
	if avatar == nil {
		return
	}
	url := avatar.Data("original-src")
	if len(ev.Files) > 0 && ev.Files[0] != "" {
		url = ev.Files[0]
	}
	if url != "" {
		avatar.SetAttr("src", url)
	}
}

// ToggleSidebar opens or closes the mobile sidebar and reports whether it is
// now visible. Opening locks body scrolling.
func ToggleSidebar(doc *dom.Document) bool {
	if doc == nil {
		return false
	}
	sidebar := doc.Query(".sidebar ul")
	button := doc.Query("a.sidebar__toggle__icon")
	if sidebar == nil || button == nil {
		return false
	}

	open := !sidebar.HasClass("visible")
	if body := doc.Body(); body != nil {
		setOverflowHidden(body, open)
	}
	button.SetAttr("aria-expanded", fmt.Sprint(open))
	button.ToggleClass("active", !button.HasClass("active"))
	sidebar.ToggleClass("visible", open)
	return open
}

func toggleSidebarOnClick(_ context.Context, _ *events.Event, matched *dom.Element) {
	ToggleSidebar(matched.Document())
}

func toggleSidebarOnKey(_ context.Context, ev *events.Event, matched *dom.Element) {
	if ev.Key != " " && ev.Key != "Enter" {
		return
	}
	ev.PreventDefault()
	ToggleSidebar(matched.Document())
}

func setOverflowHidden(body *dom.Element, hidden bool) {
	var decls []string
	for _, decl := range strings.Split(body.Attr("style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" || strings.HasPrefix(strings.ToLower(decl), "overflow") {
			continue
		}
		decls = append(decls, decl)
	}
	if hidden {
		decls = append(decls, "overflow: hidden")
	}
	if len(decls) == 0 {
		body.RemoveAttr("style")
		return
	}
	body.SetAttr("style", strings.Join(decls, "; ")+";")
}

func toggleRule(_ context.Context, _ *events.Event, matched *dom.Element) {
	button := matched.Closest("button")
	if button == nil {
		return
	}
	if button.Attr("aria-expanded") == "true" {
		button.SetAttr("aria-expanded", "false")
	} else {
		button.SetAttr("aria-expanded", "true")
	}
}

// Close stops a pending copied-flash timer. Handlers registered by the set do
// nothing afterwards.
func (s *Set) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.flash != nil {
		s.flash.Stop()
		s.flash = nil
	}
}

func (s *Set) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Set) copyInput(ctx context.Context, _ *events.Event, button *dom.Element) {
	if s.clipboard == nil || s.isClosed() {
		return
	}
	parent := button.Parent()
	if parent == nil {
		return
	}
	input := parent.Query(".input-copy__wrapper input")
	if input == nil {
		return
	}
	if err := s.clipboard.WriteText(ctx, input.Value()); err != nil {
		s.logger.Warn("clipboard write failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	parent.ToggleClass("copied", true)
	if s.flash != nil {
		s.flash.Stop()
	}
	s.flash = s.scheduler.AfterFunc(CopiedFlash, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.flash = nil
		parent.ToggleClass("copied", false)
	})
}
