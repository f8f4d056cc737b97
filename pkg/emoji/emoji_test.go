package emoji

import (
	"strings"
	"testing"
)

func TestConvert_UnicodeShortcodes(t *testing.T) {
	c := New()

	got := c.Convert(`Party :tada: <a href="/x:smile:">link :smile:</a>`)
	want := `Party 🎉 <a href="/x:smile:">link 😄</a>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConvert_LeavesUnknownAndCode(t *testing.T) {
	c := New()

	raw := `at 10:30:45 :not_a_real_emoji_code: <code>:tada:</code>`
	if got := c.Convert(raw); got != raw {
		t.Fatalf("expected unchanged fragment, got %q", got)
	}
	if got := c.Convert("plain"); got != "plain" {
		t.Fatalf("expected plain text untouched, got %q", got)
	}
}

func TestConvert_CustomEmoji(t *testing.T) {
	c := New(WithCustom(Custom{
		Shortcode: "blobcat",
		URL:       "https://cdn.example/blobcat.gif",
		StaticURL: "https://cdn.example/blobcat.png",
	}))

	got := c.Convert("hi :blobcat:!")
	for _, fragment := range []string{
		`class="emojione custom-emoji"`,
		`alt=":blobcat:"`,
		`src="https://cdn.example/blobcat.png"`,
		`data-original="https://cdn.example/blobcat.gif"`,
		`data-static="https://cdn.example/blobcat.png"`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %s in %q", fragment, got)
		}
	}
	if !strings.HasPrefix(got, "hi <img") || !strings.HasSuffix(got, "/>!") {
		t.Fatalf("unexpected surrounding text %q", got)
	}
}

func TestConvert_RejectsHostileCustomURL(t *testing.T) {
	c := New(WithCustom(Custom{Shortcode: "evil", URL: "javascript:alert(1)"}))

	got := c.Convert("x :evil: y")
	if strings.Contains(got, "javascript") || strings.Contains(got, "<img") {
		t.Fatalf("expected hostile emoji to be skipped, got %q", got)
	}
	if got != "x :evil: y" {
		t.Fatalf("expected shortcode left as text, got %q", got)
	}
}

func TestConvert_Idempotent(t *testing.T) {
	c := New(WithCustom(Custom{Shortcode: "blobcat", URL: "/emoji/blobcat.png"}))

	once := c.Convert(`<p>:blobcat: and :tada: &amp; more</p>`)
	twice := c.Convert(once)
	if once != twice {
		t.Fatalf("conversion not idempotent:\n%s\n%s", once, twice)
	}
}
