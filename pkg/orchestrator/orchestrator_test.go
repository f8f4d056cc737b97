package orchestrator_test

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	internalLoader "github.com/goliatone/go-hydrate/internal/bundle/loader"
	"github.com/goliatone/go-hydrate/pkg/behaviors"
	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/events"
	"github.com/goliatone/go-hydrate/pkg/i18n"
	"github.com/goliatone/go-hydrate/pkg/orchestrator"
	"github.com/goliatone/go-hydrate/pkg/validation"
)

const registration = `<!DOCTYPE html>
<html lang="de"><body>
<time class="relative-formatted" id="posted" datetime="2024-01-01T08:05:00Z">2024-01-01</time>
<time class="time-ago" id="ago" datetime="2024-01-01T11:59:58Z">raw</time>
<form id="new_user">
  <input id="user_account_attributes_username">
  <input id="user_password" type="password" maxlength="8">
  <input id="user_password_confirmation" type="password">
  <input id="user_website" value="spam">
</form>
</body></html>`

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type syncScheduler struct {
	mu  sync.Mutex
	fns []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

type flagTimer struct {
	mu      sync.Mutex
	stopped bool
}

func (f *flagTimer) Stop() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return true
}

func (f *flagTimer) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func (s *syncScheduler) AfterFunc(_ time.Duration, f func()) validation.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, f)
	return noopTimer{}
}

func (s *syncScheduler) last() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fns[len(s.fns)-1]
}

func parse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(registration)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestBootHydratesWithLoadedBundle(t *testing.T) {
	defer goleak.VerifyNone(t)

	fsys := fstest.MapFS{
		"de.yml": {Data: []byte(`
relative_format:
  today: "Heute um {time}"
relative_time:
  full:
    just_now: "gerade eben"
password_confirmation:
  mismatching: "Passwörter stimmen nicht überein"
`)},
	}
	loader := internalLoader.New(i18n.NewLoaderOptions(i18n.WithFileSystem(fsys)))

	orch := orchestrator.New(
		orchestrator.WithBundleLoader(loader),
		orchestrator.WithBundleSourceFunc(func(locale string) i18n.Source {
			return i18n.SourceFromFS(locale + ".yml")
		}),
		orchestrator.WithAvailableLocales("en", "de"),
	)
	doc := parse(t)
	page, err := orch.Boot(context.Background(), orchestrator.Request{Document: doc, Now: now, Location: time.UTC})
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	defer page.Close()

	if page.Locale != "de" {
		t.Fatalf("expected document locale, got %q", page.Locale)
	}
	if got := doc.GetElementByID("posted").Text(); got != "Heute um 08:05" {
		t.Fatalf("unexpected today rendering %q", got)
	}
	if got := doc.GetElementByID("ago").Text(); got != "gerade eben" {
		t.Fatalf("unexpected time ago rendering %q", got)
	}

	doc.GetElementByID("user_password").SetValue("hunter22")
	confirmation := doc.GetElementByID("user_password_confirmation")
	confirmation.SetValue("hunter2")
	page.Dispatch(context.Background(), &events.Event{Type: events.Input, Target: confirmation})
	if got := confirmation.CustomValidity(); got != "Passwörter stimmen nicht überein" {
		t.Fatalf("unexpected confirmation message %q", got)
	}
	if page.Username != nil {
		t.Fatalf("username validator requires a lookup")
	}
}

func TestBootFallsBackWhenBundleMissing(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zap.WarnLevel)
	orch := orchestrator.New(orchestrator.WithLogger(zap.New(core)))
	doc := parse(t)
	page, err := orch.Boot(context.Background(), orchestrator.Request{
		Document:     doc,
		Now:          now,
		Location:     time.UTC,
		Locale:       "en",
		BundleSource: i18n.SourceFromFile("does-not-exist.json"),
	})
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	defer page.Close()

	if got := doc.GetElementByID("posted").Text(); got != "Today at 8:05 AM" {
		t.Fatalf("expected default template, got %q", got)
	}
	if logs.FilterMessage("locale bundle unavailable, using defaults").Len() != 1 {
		t.Fatalf("expected bundle warning")
	}

	doc.GetElementByID("user_website").SetValue("spam")
	page.Dispatch(context.Background(), &events.Event{Type: events.Submit, Target: doc.GetElementByID("new_user")})
	if got := doc.GetElementByID("user_website").Value(); got != "" {
		t.Fatalf("expected honeypot cleared, got %q", got)
	}
}

func TestBootInstallsUsernameValidator(t *testing.T) {
	defer goleak.VerifyNone(t)

	sched := &syncScheduler{}
	lookup := validation.LookupFunc(func(_ context.Context, value string) (bool, error) {
		return value == "admin", nil
	})
	orch := orchestrator.New(
		orchestrator.WithLookup(lookup),
		orchestrator.WithScheduler(sched),
	)
	doc := parse(t)
	page, err := orch.Boot(context.Background(), orchestrator.Request{Document: doc, Now: now, Location: time.UTC, Locale: "en"})
	if err != nil {
		t.Fatalf("boot: %v", err)
	}

	field := doc.GetElementByID("user_account_attributes_username")
	field.SetValue("admin")
	page.Dispatch(context.Background(), &events.Event{Type: events.Input, Target: field})
	sched.last()()

	deadline := time.Now().Add(2 * time.Second)
	for field.Valid() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	page.Close()

	if got := field.CustomValidity(); got != validation.MsgUsernameTaken.Default {
		t.Fatalf("unexpected validity %q", got)
	}
	if got := page.Username.State(); got != validation.StateResolved {
		t.Fatalf("expected resolved lookup, got %s", got)
	}
}

func TestBootRequiresDocument(t *testing.T) {
	if _, err := orchestrator.New().Boot(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without document")
	}
	if _, err := orchestrator.New(orchestrator.WithLookupEndpoint(" ")).Boot(context.Background(), orchestrator.Request{Document: parse(t)}); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestPageCloseStopsCopyFlash(t *testing.T) {
	timer := &flagTimer{}
	sched := validation.SchedulerFunc(func(time.Duration, func()) validation.Timer {
		return timer
	})
	var copied string
	orch := orchestrator.New(
		orchestrator.WithScheduler(sched),
		orchestrator.WithClipboard(behaviors.ClipboardFunc(func(_ context.Context, text string) error {
			copied = text
			return nil
		})),
	)
	doc := parse(t)
	page, err := orch.Boot(context.Background(), orchestrator.Request{Document: doc, Now: now, Location: time.UTC, Locale: "en"})
	if err != nil {
		t.Fatalf("boot: %v", err)
	}

	page.Dispatch(context.Background(), &events.Event{Type: events.Click, Target: doc.GetElementByID("copy")})
	if copied != "https://example.test/invite/abc" {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	page.Close()
	if !timer.Stopped() {
		t.Fatalf("expected page close to stop the copied flash timer")
	}
}
