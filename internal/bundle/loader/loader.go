package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

// Loader implements i18n.Loader by delegating to file, fs.FS, or HTTP
// strategies and parsing the payload with i18n.ParseBundle.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ i18n.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options i18n.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches and parses the bundle identified by src.
func (l *Loader) Load(ctx context.Context, src i18n.Source) (i18n.Bundle, error) {
	if src == nil {
		return i18n.Bundle{}, errors.New("bundle loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return i18n.Bundle{}, err
	}

	name := src.Location()
	if name == "" {
		return i18n.Bundle{}, fmt.Errorf("bundle loader: %s source has no location", src.Kind())
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case i18n.SourceKindFile:
		data, err = os.ReadFile(filepath.Clean(name))
	case i18n.SourceKindFS:
		if l.fs == nil {
			return i18n.Bundle{}, errors.New("bundle loader: no file system configured")
		}
		data, err = fs.ReadFile(l.fs, name)
	case i18n.SourceKindURL:
		if !l.allowHTTP {
			return i18n.Bundle{}, errors.New("bundle loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, name, l.timeout)
	default:
		return i18n.Bundle{}, fmt.Errorf("bundle loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return i18n.Bundle{}, fmt.Errorf("bundle loader: read %s: %w", name, err)
	}

	return i18n.ParseBundle(data, name)
}
