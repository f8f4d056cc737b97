package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNetwork reports a lookup that could not reach the endpoint. Callers
// treat it as "available".
var ErrNetwork = errors.New("validation: network error")

// Lookup answers whether a value already exists remotely.
type Lookup interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, value string) (bool, error)

// Exists implements Lookup.
func (fn LookupFunc) Exists(ctx context.Context, value string) (bool, error) {
	return fn(ctx, value)
}

const (
	DefaultLookupParam   = "acct"
	DefaultLookupTimeout = 10 * time.Second
)

// LookupOption configures an HTTPLookup.
type LookupOption func(*HTTPLookup)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(client *http.Client) LookupOption {
	return func(l *HTTPLookup) {
		if client != nil {
			l.client = client
		}
	}
}

// WithQueryParam changes the query parameter carrying the value.
func WithQueryParam(name string) LookupOption {
	return func(l *HTTPLookup) {
		if name = strings.TrimSpace(name); name != "" {
			l.param = name
		}
	}
}

// WithLookupTimeout bounds each request. Zero disables the bound.
func WithLookupTimeout(d time.Duration) LookupOption {
	return func(l *HTTPLookup) {
		if d >= 0 {
			l.timeout = d
		}
	}
}

// WithLookupLogger sets the logger.
func WithLookupLogger(logger *zap.Logger) LookupOption {
	return func(l *HTTPLookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// HTTPLookup issues GET <endpoint>?<param>=<value>. Any 2xx answer means the
// value exists; every other status means it does not. Concurrent lookups for
// the same value share one request.
type HTTPLookup struct {
	endpoint string
	param    string
	client   *http.Client
	timeout  time.Duration
	logger   *zap.Logger
	group    singleflight.Group
}

// NewHTTPLookup builds a lookup against endpoint, which may already carry
// query parameters.
func NewHTTPLookup(endpoint string, options ...LookupOption) (*HTTPLookup, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("validation: lookup endpoint is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("validation: invalid lookup endpoint %q: %w", endpoint, err)
	}

	l := &HTTPLookup{
		endpoint: endpoint,
		param:    DefaultLookupParam,
		client:   http.DefaultClient,
		timeout:  DefaultLookupTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	l.logger = l.logger.Named("validation.lookup")
	return l, nil
}

// Endpoint returns the configured endpoint.
func (l *HTTPLookup) Endpoint() string {
	return l.endpoint
}

// URL returns the request URL for value.
func (l *HTTPLookup) URL(value string) string {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return l.endpoint
	}
	q := u.Query()
	q.Set(l.param, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// Exists implements Lookup.
func (l *HTTPLookup) Exists(ctx context.Context, value string) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err, shared := l.group.Do(value, func() (any, error) {
		return l.fetch(ctx, value)
	})
	if shared {
		l.logger.Debug("lookup coalesced", zap.String("value", value))
	}
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

func (l *HTTPLookup) fetch(ctx context.Context, value string) (bool, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, l.URL(value), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	taken := resp.StatusCode >= 200 && resp.StatusCode < 300
	l.logger.Debug("lookup answered",
		zap.String("value", value),
		zap.Int("status", resp.StatusCode),
		zap.Bool("taken", taken),
	)
	return taken, nil
}
