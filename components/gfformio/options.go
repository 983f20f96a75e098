package gfformio

import (
	"io"
	"log/slog"
	"net/http"
)

// DefaultRoutePath is the route the bridge answers on, relative to the base
// path passed to RegisterRoutes.
const DefaultRoutePath = "/owc/v1/gf-formio"

// DefaultMaxBodyBytes bounds submission bodies.
const DefaultMaxBodyBytes int64 = 1 << 20

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Logger       *slog.Logger
	// ServeAPIDoc mounts <route>/openapi.json.
	ServeAPIDoc bool
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    DefaultRoutePath,
		MaxBodyBytes: DefaultMaxBodyBytes,
		ServeAPIDoc:  true,
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
		opts.RoutePath = DefaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
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

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
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

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithAPIDoc(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ServeAPIDoc = enabled
	}
}
