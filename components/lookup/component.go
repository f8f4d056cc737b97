package lookup

import (
	"context"
	"net/http"

	"github.com/goliatone/go-hydrate/pkg/validation"
)

// Component bundles the lookup handler, its configuration and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// Lookup answers uniqueness checks against the component's directory
// in-process, for callers that host the form and the handler together.
func (c *Component) Lookup() validation.Lookup {
	return validation.LookupFunc(func(ctx context.Context, value string) (bool, error) {
		if c == nil || c.opts.Directory == nil {
			return false, nil
		}
		_, ok, err := c.opts.Directory.Find(ctx, value)
		return ok, err
	})
}
