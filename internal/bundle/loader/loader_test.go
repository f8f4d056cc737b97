package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

func TestLoaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "de.yml")
	if err := os.WriteFile(path, []byte("username:\n  taken: Vergeben\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	bundle, err := New(i18n.NewLoaderOptions()).Load(context.Background(), i18n.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bundle.Locale() != "de" {
		t.Fatalf("expected locale from file name, got %q", bundle.Locale())
	}
	if got, _ := bundle.Lookup("username.taken"); got != "Vergeben" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLoaderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/fr.json": {Data: []byte(`{"locale":"fr","messages":{"relative_time":{"today":"aujourd’hui"}}}`)},
	}
	l := New(i18n.NewLoaderOptions(i18n.WithFileSystem(fsys)))

	bundle, err := l.Load(context.Background(), i18n.SourceFromFS("locales/fr.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"relative_time.today"}, bundle.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := New(i18n.NewLoaderOptions()).Load(context.Background(), i18n.SourceFromFS("locales/fr.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoaderHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"username.taken":"Taken!"}`))
	}))
	defer srv.Close()

	src := i18n.SourceFromURL(srv.URL + "/en.json")
	if _, err := New(i18n.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(i18n.NewLoaderOptions(i18n.WithHTTPClient(srv.Client()), i18n.WithHTTPFallback(time.Second)))
	bundle, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, ok := bundle.Lookup("username.taken"); !ok || got != "Taken!" {
		t.Fatalf("unexpected message %q", got)
	}

	if _, err := l.Load(context.Background(), i18n.SourceFromURL(srv.URL+"/missing.json")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(i18n.NewLoaderOptions()).Load(ctx, i18n.SourceFromFile("whatever.yml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoaderRejectsEmptyLocation(t *testing.T) {
	l := New(i18n.NewLoaderOptions(i18n.WithFileSystem(fstest.MapFS{})))
	for _, src := range []i18n.Source{i18n.SourceFromFile(""), i18n.SourceFromFS("")} {
		if _, err := l.Load(context.Background(), src); err == nil {
			t.Fatalf("%s: expected error for empty location", src.Kind())
		}
	}
	if _, err := l.Load(context.Background(), i18n.SourceFromFS("missing.yml")); err == nil || !strings.Contains(err.Error(), "missing.yml") {
		t.Fatalf("expected read error naming the bundle, got %v", err)
	}
}
