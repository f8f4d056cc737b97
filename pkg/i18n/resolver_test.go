package i18n_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

var usernameTaken = i18n.Message{ID: "username.taken", Default: "That username is taken. Try another"}

func TestResolve_UsesBundleThenDefault(t *testing.T) {
	bundle := i18n.NewBundle("es", map[string]string{
		"username.taken": "Ese nombre ya existe",
	})
	r := i18n.NewResolver(bundle)

	if got := r.Resolve(usernameTaken, nil); got != "Ese nombre ya existe" {
		t.Fatalf("expected bundle template, got %q", got)
	}

	missing := i18n.Message{ID: "password_confirmation.mismatching", Default: "Password confirmation does not match"}
	if got := r.Resolve(missing, nil); got != missing.Default {
		t.Fatalf("expected default template, got %q", got)
	}

	noID := i18n.Message{Default: "Today at {time}"}
	if got := r.Resolve(noID, i18n.Values{"time": "10:00 AM"}); got != "Today at 10:00 AM" {
		t.Fatalf("expected default with empty id, got %q", got)
	}
}

func TestResolve_MissingHandlerInvoked(t *testing.T) {
	var seen []string
	r := i18n.NewResolver(i18n.NewBundle("en", nil), i18n.WithMissingHandler(func(locale, id string) {
		seen = append(seen, locale+":"+id)
	}))

	r.Resolve(usernameTaken, nil)
	r.Resolve(i18n.Message{Default: "no id"}, nil)

	if len(seen) != 1 || seen[0] != "en:username.taken" {
		t.Fatalf("unexpected missing notifications %v", seen)
	}
}

func TestResolve_MalformedTemplateFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	bundle := i18n.NewBundle("en", map[string]string{
		"relative_format.today": "Today at {time",
		"broken.both":           "{count, plural, one {x}}",
	})
	r := i18n.NewResolver(bundle, i18n.WithLogger(zap.New(core)))

	today := i18n.Message{ID: "relative_format.today", Default: "Today at {time}"}
	if got := r.Resolve(today, i18n.Values{"time": "9:05 AM"}); got != "Today at 9:05 AM" {
		t.Fatalf("expected formatted default after bundle failure, got %q", got)
	}

	both := i18n.Message{ID: "broken.both", Default: "{count, plural, one {y}}"}
	if got := r.Resolve(both, i18n.Values{"count": 1}); got != both.Default {
		t.Fatalf("expected raw default as last resort, got %q", got)
	}

	if logs.Len() != 2 {
		t.Fatalf("expected two warnings, got %d", logs.Len())
	}
}

func TestFormat_Plurals(t *testing.T) {
	r := i18n.NewResolver(i18n.NewBundle("en", nil))
	tpl := "{number, plural, =0 {no minutes} one {# minute} other {# minutes}} ago"

	cases := []struct {
		n    any
		want string
	}{
		{0, "no minutes ago"},
		{1, "1 minute ago"},
		{5, "5 minutes ago"},
		{1500, "1,500 minutes ago"},
		{int64(2), "2 minutes ago"},
		{"1", "1 minute ago"},
	}
	for _, tc := range cases {
		got, err := r.Format(tpl, i18n.Values{"number": tc.n})
		if err != nil {
			t.Fatalf("format %v: %v", tc.n, err)
		}
		if got != tc.want {
			t.Fatalf("format %v: expected %q, got %q", tc.n, tc.want, got)
		}
	}
}

func TestFormat_LocalePluralRules(t *testing.T) {
	r := i18n.NewResolver(i18n.NewBundle("fr", nil))
	tpl := "{n, plural, one {# jour} other {# jours}}"

	// French treats 0 and 1 as "one".
	for n, want := range map[int]string{0: "0 jour", 1: "1 jour", 2: "2 jours"} {
		got, err := r.Format(tpl, i18n.Values{"n": n})
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		if got != want {
			t.Fatalf("n=%d: expected %q, got %q", n, want, got)
		}
	}
}

func TestFormat_SelectQuotingAndNumbers(t *testing.T) {
	r := i18n.NewResolver(i18n.NewBundle("en", nil))

	got, err := r.Format("{who, select, self {You} other {{who}}} can''t see '{braces}' | {total, number}", i18n.Values{
		"who":   "Ana",
		"total": 1234567,
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "Ana can't see {braces} | 1,234,567"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got, err = r.Format("{n, plural, offset:1 =0 {nobody} one {you and # other} other {you and # others}}", i18n.Values{"n": 3})
	if err != nil {
		t.Fatalf("format offset: %v", err)
	}
	if got != "you and 2 others" {
		t.Fatalf("unexpected offset output %q", got)
	}
}

func TestFormat_Errors(t *testing.T) {
	r := i18n.NewResolver(i18n.NewBundle("en", nil))

	bad := []string{
		"{",
		"}",
		"{name",
		"{n, plural, one {x}}",
		"{n, date}",
		"{, number}",
	}
	for _, tpl := range bad {
		_, err := r.Format(tpl, i18n.Values{"n": 1, "name": "x"})
		var formatErr *i18n.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("template %q: expected FormatError, got %v", tpl, err)
		}
	}

	_, err := r.Format("hello {name}", nil)
	if !errors.Is(err, i18n.ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}
}

func TestTranslate(t *testing.T) {
	r := i18n.NewResolver(i18n.NewBundle("en", map[string]string{"greet": "Hi {name}"}))

	got, err := r.Translate("en", "greet", map[string]any{"name": "Bo"})
	if err != nil || got != "Hi Bo" {
		t.Fatalf("unexpected translate result %q (%v)", got, err)
	}
	if _, err := r.Translate("en", "nope"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
