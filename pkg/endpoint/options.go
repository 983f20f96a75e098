package endpoint

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/translate"
)

// Option customises a Service.
type Option func(*Service)

// WithSource sets the form platform. Without one every call reports the
// capability as unavailable.
func WithSource(source formsource.Source) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithProbe overrides the availability check. By default the source is
// probed when it implements formsource.Probe.
func WithProbe(probe formsource.Probe) Option {
	return func(s *Service) {
		s.probe = probe
	}
}

// WithForward replaces the forward translator.
func WithForward(forward *translate.Forward) Option {
	return func(s *Service) {
		if forward != nil {
			s.forward = forward
		}
	}
}

// WithDecorators registers decorators run against every translated schema.
func WithDecorators(decorators ...translate.Decorator) Option {
	return func(s *Service) {
		if len(decorators) == 0 {
			return
		}
		s.decorators = append(s.decorators, decorators...)
	}
}

// WithTransformer registers a Transformer applied to fetched forms.
func WithTransformer(t Transformer) Option {
	return func(s *Service) {
		s.transformer = t
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
