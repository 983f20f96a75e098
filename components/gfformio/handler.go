package gfformio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-formbridge/pkg/endpoint"
)

type HTTPError interface {
	error
	StatusCode() int
}

// StatusError lets guards choose the response status.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds the bridge handler with default options plus overrides.
func Handler(svc *endpoint.Service, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(svc, NewOptions(fns...))
}

// HandlerWithOptions builds the bridge handler from a pre-constructed Options
// value. The form id is read from the {id} path value, or from the path
// segment after the route when the handler is mounted without a pattern.
func HandlerWithOptions(svc *endpoint.Service, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if svc == nil {
			writeEnvelope(w, http.StatusServiceUnavailable, endpoint.ErrCapabilityUnavailable.Record())
			return
		}

		req := endpoint.Request{Params: map[string]any{}}
		if id := formID(r, opts.RoutePath); id != "" {
			req.Params[endpoint.ParamID] = id
		}

		switch r.Method {
		case http.MethodGet:
			schema, err := svc.Form(r.Context(), req)
			if err != nil {
				writeError(w, r, opts, err)
				return
			}
			writeEnvelope(w, http.StatusOK, schema)
		case http.MethodPost:
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeEnvelope(w, http.StatusRequestEntityTooLarge, endpoint.ErrorRecord{Message: "Request body too large"})
					return
				}
				writeError(w, r, opts, &endpoint.Error{Kind: endpoint.KindMalformedPayload, Err: err})
				return
			}
			req.Body = body
			result, err := svc.Submit(r.Context(), req)
			if err != nil {
				writeError(w, r, opts, err)
				return
			}
			writeEnvelope(w, http.StatusOK, result)
		}
	})
}

func formID(r *http.Request, routePath string) string {
	if id := strings.TrimSpace(r.PathValue("id")); id != "" {
		return id
	}
	route := "/" + strings.Trim(routePath, "/")
	idx := strings.LastIndex(r.URL.Path, route)
	if idx < 0 {
		return ""
	}
	rest := strings.Trim(r.URL.Path[idx+len(route):], "/")
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// StatusFor maps an error to the response status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, endpoint.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, endpoint.ErrMissingIdentifier), errors.Is(err, endpoint.ErrMalformedPayload):
		return http.StatusBadRequest
	case errors.Is(err, endpoint.ErrFormNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, opts Options, err error) {
	status := StatusFor(err)
	record := endpoint.ErrorRecord{Message: http.StatusText(status)}
	if endpointErr, ok := endpoint.AsError(err); ok {
		record = endpointErr.Record()
	}
	if status >= http.StatusInternalServerError {
		opts.Logger.ErrorContext(r.Context(), "bridge request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeEnvelope(w, status, record)
}

// writeEnvelope encodes payload before committing the status so an encoding
// failure still answers with a record.
func writeEnvelope(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(endpoint.ErrorRecord{Message: http.StatusText(status)})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	writeEnvelope(w, code, endpoint.ErrorRecord{Message: http.StatusText(code)})
}
