package endpoint

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Kind classifies boundary failures.
type Kind int

const (
	KindCapabilityUnavailable Kind = iota + 1
	KindMissingIdentifier
	KindFormNotFound
	KindMalformedPayload
)

func (k Kind) String() string {
	switch k {
	case KindCapabilityUnavailable:
		return "capability_unavailable"
	case KindMissingIdentifier:
		return "missing_identifier"
	case KindFormNotFound:
		return "form_not_found"
	case KindMalformedPayload:
		return "malformed_payload"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; only the Kind is compared.
var (
	ErrCapabilityUnavailable = &Error{Kind: KindCapabilityUnavailable}
	ErrMissingIdentifier     = &Error{Kind: KindMissingIdentifier}
	ErrFormNotFound          = &Error{Kind: KindFormNotFound}
	ErrMalformedPayload      = &Error{Kind: KindMalformedPayload}
)

// Error is a terminal boundary failure. Callers report it and do not retry.
type Error struct {
	Kind Kind
	// ID is the requested form id, set for KindFormNotFound.
	ID gravity.ID
	// Err is the underlying cause, when there is one.
	Err error
}

// ErrorRecord is the wire shape of an Error.
type ErrorRecord struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Message returns the client facing message.
func (e *Error) Message() string {
	switch e.Kind {
	case KindCapabilityUnavailable:
		return "Gravity Forms is not installed"
	case KindMissingIdentifier:
		return "No id given"
	case KindFormNotFound:
		return fmt.Sprintf("Gravity Form with id: %s is not found", e.ID)
	case KindMalformedPayload:
		return "Invalid request body"
	default:
		return "Internal Server Error"
	}
}

// Record returns the error record sent to clients.
func (e *Error) Record() ErrorRecord {
	record := ErrorRecord{Message: e.Message()}
	if e.Kind == KindFormNotFound {
		record.Data = e.ID
	}
	return record
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("endpoint: %s: %v", e.Message(), e.Err)
	}
	return "endpoint: " + e.Message()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
