package i18n_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

func TestParseBundle_YAMLNested(t *testing.T) {
	data := []byte(`
relative_time:
  today: today
  full:
    just_now: just now
username.taken: Nombre ocupado
`)
	bundle, err := i18n.ParseBundle(data, "locales/es.yml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bundle.Locale() != "es" {
		t.Fatalf("expected locale from file name, got %q", bundle.Locale())
	}
	want := []string{"relative_time.full.just_now", "relative_time.today", "username.taken"}
	if diff := cmp.Diff(want, bundle.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if tpl, _ := bundle.Lookup("relative_time.full.just_now"); tpl != "just now" {
		t.Fatalf("unexpected template %q", tpl)
	}
}

func TestParseBundle_JSONEnvelope(t *testing.T) {
	data := []byte(`{"locale":"pt-BR","messages":{"relative_format.today":"Hoje às {time}"}}`)
	bundle, err := i18n.ParseBundle(data, "bundle.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bundle.Locale() != "pt-BR" || bundle.Len() != 1 {
		t.Fatalf("unexpected bundle %q len=%d", bundle.Locale(), bundle.Len())
	}
}

func TestParseBundle_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"empty.yml":  "   ",
		"list.yml":   "- a\n- b\n",
		"nested.yml": "a:\n  - 1\n",
	} {
		if _, err := i18n.ParseBundle([]byte(data), name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestNewBundle_IsImmutableCopy(t *testing.T) {
	src := map[string]string{"a": "1"}
	bundle := i18n.NewBundle("en", src)
	src["a"] = "2"
	if tpl, _ := bundle.Lookup("a"); tpl != "1" {
		t.Fatalf("bundle should not observe caller mutation, got %q", tpl)
	}
}

func TestMatchLocale(t *testing.T) {
	available := []string{"en", "de", "pt-BR"}
	cases := map[string]string{
		"en-GB": "en",
		"de-AT": "de",
		"pt":    "pt-BR",
		"":      "en",
		"zz-!!": "en",
	}
	for requested, want := range cases {
		if got := i18n.MatchLocale(requested, available); got != want {
			t.Fatalf("MatchLocale(%q) = %q, want %q", requested, got, want)
		}
	}
	if got := i18n.MatchLocale("fr", nil); got != "fr" {
		t.Fatalf("expected requested locale without candidates, got %q", got)
	}
}
