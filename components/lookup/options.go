package lookup

import "net/http"

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Param     string
	MaxLength int
	Guard     GuardFunc

	Directory Directory
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/v1/accounts/lookup",
		Param:     "acct",
		MaxLength: 256,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/v1/accounts/lookup"
	}
	if opts.Param == "" {
		opts.Param = "acct"
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = 256
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Param = name
	}
}

func WithMaxLength(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLength = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithDirectory(dir Directory) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Directory = dir
	}
}

// WithNames backs the handler with a fixed set of taken names.
func WithNames(names []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Directory = NewNameSet(names...)
	}
}
