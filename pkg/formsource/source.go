package formsource

import (
	"context"
	"errors"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

var (
	// ErrFormNotFound is returned by FetchForm and SubmitForm when no form has
	// the requested id.
	ErrFormNotFound = errors.New("formsource: form not found")
	// ErrUnavailable is returned by a Probe when the backing form platform
	// cannot serve requests.
	ErrUnavailable = errors.New("formsource: form source unavailable")
)

// RequiredMessage is the validation message for an empty required input.
const RequiredMessage = "This field is required."

// DefaultConfirmation is the confirmation message reported for accepted
// submissions when the source has none of its own.
const DefaultConfirmation = "Thanks for contacting us! We will get in touch with you shortly."

// Source is the form platform capability.
type Source interface {
	FetchForm(ctx context.Context, id gravity.ID) (gravity.Form, error)
	SubmitForm(ctx context.Context, id gravity.ID, body map[string]any) (gravity.SubmissionResult, error)
}

// Probe reports whether a form platform is installed and reachable.
type Probe interface {
	Available(ctx context.Context) error
}

// ProbeFunc adapts a function into a Probe.
type ProbeFunc func(ctx context.Context) error

// Available calls the underlying function.
func (fn ProbeFunc) Available(ctx context.Context) error {
	return fn(ctx)
}

// ValidateRequired checks required fields of form against a submission body
// the way Gravity Forms does: a required input that is missing, nil or the
// empty string fails. Messages are keyed by field id.
func ValidateRequired(form gravity.Form, body map[string]any) map[string]string {
	var messages map[string]string
	for _, field := range form.Fields {
		if !field.IsRequired {
			continue
		}
		if !isBlank(body["input_"+field.ID.String()]) {
			continue
		}
		if messages == nil {
			messages = make(map[string]string)
		}
		messages[field.ID.String()] = RequiredMessage
	}
	return messages
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
