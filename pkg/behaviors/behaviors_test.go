package behaviors_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hydrate/pkg/behaviors"
	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/events"
	"github.com/goliatone/go-hydrate/pkg/validation"
)

const page = `<html><body>
<nav class="sidebar"><a class="sidebar__toggle__icon" aria-expanded="false"><span id="icon">≡</span></a><ul><li>Home</li></ul></nav>
<form id="new_user">
  <input id="user_email" value="me@example.test">
  <input id="user_website" value="http://spam.test">
  <input id="user_confirm_password" value="x">
  <button id="submit">Sign up</button>
</form>
<form id="edit_profile">
  <input type="file" id="account_avatar">
  <img id="account_avatar-preview" src="/old.png" data-original-src="/avatar.png">
</form>
<p><img class="emojione custom-emoji" id="blob" src="/static.png" data-original="/anim.gif" data-static="/static.png"></p>
<ol class="rules-list"><li><button id="rule"><span id="rule-text">Be nice</span></button></li></ol>
<div class="input-copy"><div class="input-copy__wrapper"><input id="link" value="https://example.test/@me"></div><button id="copy">Copy</button></div>
</body></html>`

type stubTimer struct{}

func (stubTimer) Stop() bool { return true }

type countingTimer struct{ stops int }

func (c *countingTimer) Stop() bool {
	c.stops++
	return true
}

func setup(t *testing.T, options ...behaviors.Option) (*dom.Document, *events.Delegator) {
	t.Helper()
	doc, d, _ := setupSet(t, options...)
	return doc, d
}

func setupSet(t *testing.T, options ...behaviors.Option) (*dom.Document, *events.Delegator, *behaviors.Set) {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	d := events.NewDelegator()
	set := behaviors.New(options...)
	if err := set.Register(d); err != nil {
		t.Fatalf("register: %v", err)
	}
	return doc, d, set
}

func dispatch(d *events.Delegator, ev *events.Event) {
	d.Dispatch(context.Background(), ev)
}

func TestHoneypotsClearedOnSubmit(t *testing.T) {
	doc, d := setup(t)
	dispatch(d, &events.Event{Type: events.Submit, Target: doc.GetElementByID("new_user")})

	got := []string{
		doc.GetElementByID("user_email").Value(),
		doc.GetElementByID("user_website").Value(),
		doc.GetElementByID("user_confirm_password").Value(),
	}
	if diff := cmp.Diff([]string{"me@example.test", "", ""}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomEmojiHoverSwap(t *testing.T) {
	doc, d := setup(t)
	img := doc.GetElementByID("blob")

	dispatch(d, &events.Event{Type: events.MouseOver, Target: img})
	if got := img.Attr("src"); got != "/anim.gif" {
		t.Fatalf("expected animated source, got %q", got)
	}
	dispatch(d, &events.Event{Type: events.MouseOut, Target: img})
	if got := img.Attr("src"); got != "/static.png" {
		t.Fatalf("expected static source, got %q", got)
	}
}

func TestAvatarPreview(t *testing.T) {
	doc, d := setup(t)
	input := doc.GetElementByID("account_avatar")
	preview := doc.GetElementByID("account_avatar-preview")

	dispatch(d, &events.Event{Type: events.Change, Target: input, Files: []string{"blob:local/1"}})
	if got := preview.Attr("src"); got != "blob:local/1" {
		t.Fatalf("expected chosen file, got %q", got)
	}
	dispatch(d, &events.Event{Type: events.Change, Target: input})
	if got := preview.Attr("src"); got != "/avatar.png" {
		t.Fatalf("expected original source restored, got %q", got)
	}
}

func TestSidebarToggle(t *testing.T) {
	doc, d := setup(t)
	button := doc.Query("a.sidebar__toggle__icon")
	sidebar := doc.Query(".sidebar ul")

	dispatch(d, &events.Event{Type: events.Click, Target: doc.GetElementByID("icon")})
	if !sidebar.HasClass("visible") || !button.HasClass("active") || button.Attr("aria-expanded") != "true" {
		t.Fatalf("expected sidebar open")
	}
	if got := doc.Body().Attr("style"); got != "overflow: hidden;" {
		t.Fatalf("expected scroll lock, got %q", got)
	}

	ignored := &events.Event{Type: events.KeyDown, Target: button, Key: "a"}
	dispatch(d, ignored)
	if ignored.DefaultPrevented() || !sidebar.HasClass("visible") {
		t.Fatalf("other keys must be ignored")
	}

	enter := &events.Event{Type: events.KeyDown, Target: button, Key: "Enter"}
	dispatch(d, enter)
	if !enter.DefaultPrevented() {
		t.Fatalf("expected enter to be consumed")
	}
	if sidebar.HasClass("visible") || button.HasClass("active") || button.Attr("aria-expanded") != "false" {
		t.Fatalf("expected sidebar closed")
	}
	if doc.Body().HasAttr("style") {
		t.Fatalf("expected scroll lock released")
	}
}

func TestRulesToggle(t *testing.T) {
	doc, d := setup(t)
	button := doc.GetElementByID("rule")

	dispatch(d, &events.Event{Type: events.Click, Target: doc.GetElementByID("rule-text")})
	if got := button.Attr("aria-expanded"); got != "true" {
		t.Fatalf("expected expanded, got %q", got)
	}
	dispatch(d, &events.Event{Type: events.Click, Target: button})
	if got := button.Attr("aria-expanded"); got != "false" {
		t.Fatalf("expected collapsed, got %q", got)
	}
}

func TestCopyButton(t *testing.T) {
	var copied []string
	var flash func()
	clipboard := behaviors.ClipboardFunc(func(_ context.Context, text string) error {
		copied = append(copied, text)
		return nil
	})
	sched := validation.SchedulerFunc(func(d time.Duration, f func()) validation.Timer {
		if d != behaviors.CopiedFlash {
			t.Errorf("unexpected flash duration %s", d)
		}
		flash = f
		return stubTimer{}
	})

	doc, d, _ := setupSet(t, behaviors.WithClipboard(clipboard), behaviors.WithScheduler(sched))
	wrapper := doc.Query(".input-copy")

	dispatch(d, &events.Event{Type: events.Click, Target: doc.GetElementByID("copy")})
	if diff := cmp.Diff([]string{"https://example.test/@me"}, copied); diff != "" {
		t.Fatalf("clipboard mismatch (-want +got):\n%s", diff)
	}
	if !wrapper.HasClass("copied") {
		t.Fatalf("expected copied flash")
	}
	if flash == nil {
		t.Fatalf("expected flash removal to be scheduled")
	}
	flash()
	if wrapper.HasClass("copied") {
		t.Fatalf("expected copied flash cleared")
	}
}

func TestCopyButtonClipboardFailure(t *testing.T) {
	clipboard := behaviors.ClipboardFunc(func(context.Context, string) error {
		return errors.New("denied")
	})
	doc, d := setup(t, behaviors.WithClipboard(clipboard))

	dispatch(d, &events.Event{Type: events.Click, Target: doc.GetElementByID("copy")})
	if doc.Query(".input-copy").HasClass("copied") {
		t.Fatalf("failed copy must not flash")
	}
}

func TestCloseStopsCopiedFlash(t *testing.T) {
	var copies int
	clipboard := behaviors.ClipboardFunc(func(context.Context, string) error {
		copies++
		return nil
	})
	var timers []*countingTimer
	var flashes []func()
	sched := validation.SchedulerFunc(func(_ time.Duration, f func()) validation.Timer {
		timer := &countingTimer{}
		timers = append(timers, timer)
		flashes = append(flashes, f)
		return timer
	})

	doc, d, set := setupSet(t, behaviors.WithClipboard(clipboard), behaviors.WithScheduler(sched))
	wrapper := doc.Query(".input-copy")
	button := doc.GetElementByID("copy")

	dispatch(d, &events.Event{Type: events.Click, Target: button})
	dispatch(d, &events.Event{Type: events.Click, Target: button})
	if len(timers) != 2 || timers[0].stops != 1 {
		t.Fatalf("expected the second copy to replace the first flash, got %d timers", len(timers))
	}

	set.Close()
	if timers[1].stops != 1 {
		t.Fatalf("expected close to stop the pending flash")
	}
	flashes[1]()
	if !wrapper.HasClass("copied") {
		t.Fatalf("expected document untouched by a flash firing after close")
	}

	dispatch(d, &events.Event{Type: events.Click, Target: button})
	if copies != 2 || len(timers) != 2 {
		t.Fatalf("expected no copy after close, got copies=%d timers=%d", copies, len(timers))
	}
}
