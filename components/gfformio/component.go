package gfformio

import (
	"net/http"

	"github.com/goliatone/go-formbridge/pkg/endpoint"
)

// Component bundles a bridge service with its HTTP configuration.
type Component struct {
	svc  *endpoint.Service
	opts Options
}

// New constructs a component serving svc.
func New(svc *endpoint.Service, fns ...OptionFn) *Component {
	return &Component{svc: svc, opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the bridge handler wrapped in recovery, request id and
// request logging middleware.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler(nil)
	}
	return Chain(HandlerWithOptions(c.svc, c.opts),
		Recovery(c.opts.Logger),
		RequestID(),
		Logging(c.opts.Logger),
	)
}

// RegisterRoutes registers the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath, nil)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.svc, c.opts)
}
