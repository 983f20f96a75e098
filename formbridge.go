package formbridge

import (
	"context"

	"github.com/goliatone/go-formbridge/internal/loader"
	"github.com/goliatone/go-formbridge/pkg/endpoint"
	"github.com/goliatone/go-formbridge/pkg/formio"
	"github.com/goliatone/go-formbridge/pkg/gravity"
	"github.com/goliatone/go-formbridge/pkg/translate"
)

// Form is a Gravity Forms form definition.
type Form = gravity.Form

// Field is a Gravity Forms field definition.
type Field = gravity.Field

// Schema is a translated form.io schema.
type Schema = formio.Schema

// Component is one form.io component.
type Component = formio.Component

// Request carries the inputs of a bridge call.
type Request = endpoint.Request

// Service runs the bridge operations against a form source.
type Service = endpoint.Service

// NewService exposes the endpoint constructor from the top-level module.
func NewService(options ...endpoint.Option) *Service {
	return endpoint.New(options...)
}

// Translate converts a form definition into a form.io schema with the default
// pipeline.
func Translate(form Form) Schema {
	return translate.Translate(form)
}

// TranslateSubmission decodes a raw form.io payload and maps it onto the
// inputs of form.
func TranslateSubmission(form Form, body []byte) (map[string]any, error) {
	payload, err := translate.DecodePayload(body)
	if err != nil {
		return nil, err
	}
	return translate.TranslateSubmission(form, payload), nil
}

// LoadForm reads and decodes a form document from a file or URL source.
func LoadForm(ctx context.Context, source gravity.Source) (Form, error) {
	return loader.New(loader.Options{AllowHTTP: true}).LoadForm(ctx, source)
}
