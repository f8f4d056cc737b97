package datefmt

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestFormatter_English(t *testing.T) {
	f := New("en", time.UTC)
	ts := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		got  string
		want string
	}{
		"datetime":        {f.DateTime(ts), "January 1, 2024 at 10:00 AM"},
		"date":            {f.Date(ts), "Jan 1, 2024"},
		"time":            {f.Time(ts), "10:00 AM"},
		"short date":      {f.ShortDate(ts), "Jan 1"},
		"short date year": {f.ShortDateYear(ts), "Jan 1, 2024"},
		"midnight":        {f.Time(ts.Add(-10 * time.Hour)), "12:00 AM"},
		"afternoon":       {f.Time(ts.Add(5*time.Hour + 7*time.Minute)), "3:07 PM"},
	}
	for name, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %q, got %q", name, tc.want, tc.got)
		}
	}
}

func TestFormatter_LocalesAndLocation(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)

	if got := New("de-AT", time.UTC).DateTime(ts); got != "5. März 2024 um 22:30" {
		t.Fatalf("unexpected german datetime %q", got)
	}
	if got := New("pt", time.UTC).Date(ts); got != "5 de mar. de 2024" {
		t.Fatalf("unexpected portuguese date %q", got)
	}
	if got := New("xx", time.UTC).Date(ts); got != "Mar 5, 2024" {
		t.Fatalf("expected english fallback, got %q", got)
	}

	tokyo := time.FixedZone("JST", 9*3600)
	if got := New("ja", tokyo).DateTime(ts); got != "2024年3月6日 7:30" {
		t.Fatalf("expected calendar fields in location, got %q", got)
	}
}

func TestLoadCatalog_Validates(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yml": {Data: []byte("locales:\n  - locale: xx\n    month_names: [a]\n")},
	}
	if _, err := LoadCatalog(fsys, "bad.yml"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := LoadCatalog(fsys, "missing.yml"); err == nil {
		t.Fatalf("expected read error")
	}
	if len(DefaultCatalog().Locales()) < 6 {
		t.Fatalf("expected embedded locales")
	}
}
