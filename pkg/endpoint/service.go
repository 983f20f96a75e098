package endpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbridge/pkg/formio"
	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
	"github.com/goliatone/go-formbridge/pkg/translate"
)

// ParamID names the form id request parameter.
const ParamID = "id"

// Request carries the inputs of one call. Submit reads Payload when it is
// non-nil and decodes Body otherwise.
type Request struct {
	Params  map[string]any
	Body    []byte
	Payload map[string]any
}

// Service runs the forward and inverse operations against a form source.
type Service struct {
	source      formsource.Source
	probe       formsource.Probe
	forward     *translate.Forward
	decorators  []translate.Decorator
	transformer Transformer
	logger      *slog.Logger
}

// New constructs a Service applying any provided options.
func New(options ...Option) *Service {
	s := &Service{
		forward: translate.NewForward(),
		logger:  discardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.probe == nil {
		if probe, ok := s.source.(formsource.Probe); ok {
			s.probe = probe
		}
	}
	return s
}

// Form translates the requested form into a form.io schema.
func (s *Service) Form(ctx context.Context, req Request) (formio.Schema, error) {
	form, err := s.resolve(ctx, req)
	if err != nil {
		return formio.Schema{}, err
	}

	schema := s.forward.Translate(form)
	for _, decorator := range s.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&schema); err != nil {
			return formio.Schema{}, fmt.Errorf("endpoint: decorate schema: %w", err)
		}
	}

	s.logger.DebugContext(ctx, "form translated",
		"form_id", form.ID.String(),
		"components", len(schema.Components),
	)
	return schema, nil
}

// Submit maps a form.io payload onto the form's inputs and submits it. The
// platform's result is returned unchanged.
func (s *Service) Submit(ctx context.Context, req Request) (gravity.SubmissionResult, error) {
	form, err := s.resolve(ctx, req)
	if err != nil {
		return gravity.SubmissionResult{}, err
	}

	var payload translate.Payload
	if req.Payload != nil {
		payload = translate.PayloadFromMap(req.Payload)
	} else {
		payload, err = translate.DecodePayload(req.Body)
		if err != nil {
			return gravity.SubmissionResult{}, &Error{Kind: KindMalformedPayload, Err: err}
		}
	}

	body := translate.TranslateSubmission(form, payload)
	result, err := s.source.SubmitForm(ctx, form.ID, body)
	if err != nil {
		if errors.Is(err, formsource.ErrFormNotFound) {
			return gravity.SubmissionResult{}, &Error{Kind: KindFormNotFound, ID: form.ID, Err: err}
		}
		return gravity.SubmissionResult{}, fmt.Errorf("endpoint: submit form %s: %w", form.ID, err)
	}

	s.logger.InfoContext(ctx, "submission forwarded",
		"form_id", form.ID.String(),
		"inputs", len(body)-1,
		"valid", result.IsValid,
	)
	return result, nil
}

// resolve runs the boundary checks and returns the form identified by req.
// The form id is set to the requested id so the submission body echoes what
// the client asked for.
func (s *Service) resolve(ctx context.Context, req Request) (gravity.Form, error) {
	if ctx == nil {
		return gravity.Form{}, errors.New("endpoint: context is required")
	}
	if err := ctx.Err(); err != nil {
		return gravity.Form{}, err
	}

	if err := s.available(ctx); err != nil {
		s.logger.WarnContext(ctx, "form source unavailable", "error", err)
		return gravity.Form{}, err
	}

	id, ok := gravity.ParseID(req.Params[ParamID])
	if !ok || id.IsZero() {
		return gravity.Form{}, ErrMissingIdentifier
	}

	form, err := s.source.FetchForm(ctx, id)
	if err != nil {
		if errors.Is(err, formsource.ErrFormNotFound) {
			return gravity.Form{}, &Error{Kind: KindFormNotFound, ID: id, Err: err}
		}
		return gravity.Form{}, fmt.Errorf("endpoint: fetch form %s: %w", id, err)
	}
	form.ID = id

	if s.transformer != nil {
		if err := s.transformer.Transform(ctx, &form); err != nil {
			return gravity.Form{}, fmt.Errorf("endpoint: transform form %s: %w", id, err)
		}
	}
	return form, nil
}

func (s *Service) available(ctx context.Context) error {
	if s.source == nil {
		return ErrCapabilityUnavailable
	}
	if s.probe == nil {
		return nil
	}
	if err := s.probe.Available(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Kind: KindCapabilityUnavailable, Err: err}
	}
	return nil
}
