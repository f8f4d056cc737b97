package lookup

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is satisfied by *http.ServeMux. Patterns carry a method prefix, so the
// mux must understand Go 1.22 routing patterns.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the request path the handler answers on under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return New(fns...).Path(basePath)
}

// RegisterRoutes mounts a component built from fns on mux and returns the
// request path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return New(fns...).RegisterRoutes(mux, basePath)
}

// RegisterRoutesWithOptions is RegisterRoutes for a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	return (&Component{opts: NewOptions(func(o *Options) { *o = opts })}).RegisterRoutes(mux, basePath)
}

// Path joins basePath and the configured route path into an absolute,
// cleaned request path.
func (c *Component) Path(basePath string) string {
	return joinRoute(basePath, c.Options().RoutePath)
}

// RegisterRoutes registers the handler for GET on mux. GET patterns also
// match HEAD, and the mux answers other methods with 405.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", errors.New("lookup: missing mux")
	}
	p := c.Path(basePath)
	mux.Handle(http.MethodGet+" "+p, c.Handler())
	return p, nil
}

func joinRoute(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
