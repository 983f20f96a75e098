package endpoint

import (
	"context"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Transformer mutates a fetched form before it is translated. It runs for
// both operations so submissions match against the same field set.
type Transformer interface {
	Transform(ctx context.Context, form *gravity.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *gravity.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *gravity.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// VisibleFieldsOnly drops fields whose visibility is not "visible".
func VisibleFieldsOnly() Transformer {
	return TransformerFunc(func(_ context.Context, form *gravity.Form) error {
		kept := make([]gravity.Field, 0, len(form.Fields))
		for _, field := range form.Fields {
			if field.Visibility == gravity.VisibilityVisible {
				kept = append(kept, field)
			}
		}
		form.Fields = kept
		return nil
	})
}
