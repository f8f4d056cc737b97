package hydrate

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-hydrate/pkg/i18n"
	"github.com/goliatone/go-hydrate/pkg/orchestrator"
)

func TestDocumentRendersHydratedMarkup(t *testing.T) {
	markup := `<html lang="fr"><body><time class="relative-formatted" datetime="2024-03-05T09:00:00Z">x</time></body></html>`
	fsys := fstest.MapFS{"fr.json": {Data: []byte(`{"relative_format.today":"Aujourd’hui à {time}"}`)}}

	out, report, err := Document(context.Background(), strings.NewReader(markup),
		Request{Now: time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC), Location: time.UTC},
		orchestrator.WithBundleLoader(NewBundleLoader(i18n.WithFileSystem(fsys))),
		orchestrator.WithBundleSourceFunc(func(locale string) i18n.Source {
			return i18n.SourceFromFS(locale + ".json")
		}),
	)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("unexpected failures: %v", err)
	}
	if !strings.Contains(string(out), ">Aujourd’hui à 09:00</time>") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLocaleDataFS(t *testing.T) {
	data, err := fs.ReadFile(LocaleDataFS(), "data/locales.yml")
	if err != nil {
		t.Fatalf("expected embedded locale data: %v", err)
	}
	if !strings.Contains(string(data), "locale: en") {
		t.Fatalf("expected english rules in locale data")
	}
}
