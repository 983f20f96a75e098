package gfapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

const formBody = `{
  "id": "3",
  "title": "Contact",
  "fields": [
    {"id": 1, "label": "Name", "adminLabel": "", "type": "text", "isRequired": true, "choices": ""},
    {"id": 2, "label": "Colour", "type": "radio", "choices": [{"text": "Red", "value": "red", "isSelected": false}]}
  ],
  "button": {"type": "text", "text": "Send", "imageUrl": ""}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL+"/", WithCredentials("ck_key", "cs_secret"), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClient_FetchForm(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/gf/v2/forms/3" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_key" || pass != "cs_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, formBody)
	})

	form, err := client.FetchForm(context.Background(), "3")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if form.ID != "3" || len(form.Fields) != 2 {
		t.Fatalf("unexpected form: %#v", form)
	}
	if form.Fields[0].Choices.Present() {
		t.Fatalf("expected empty-string choices to decode as absent")
	}
	if form.Button == nil || form.Button.Label() != "Send" {
		t.Fatalf("unexpected button: %#v", form.Button)
	}
}

func TestClient_FetchFormNotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"not_found","message":"Form not found"}`)
	})

	if _, err := client.FetchForm(context.Background(), "999"); !errors.Is(err, formsource.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestClient_FetchFormServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchForm(context.Background(), "1")
	if err == nil || errors.Is(err, formsource.ErrFormNotFound) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestClient_SubmitForm(t *testing.T) {
	var received map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/wp-json/gf/v2/forms/3/submissions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"is_valid":true,"validation_messages":[],"page_number":0,"source_page_number":1,"confirmation_message":"Thanks","confirmation_type":"message","entry_id":42}`)
	})

	result, err := client.SubmitForm(context.Background(), "3", map[string]any{"input_1": "Ann", "formId": gravity.ID("3")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := gravity.SubmissionResult{
		IsValid:             true,
		SourcePageNumber:    1,
		ConfirmationMessage: "Thanks",
		ConfirmationType:    "message",
		EntryID:             "42",
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"input_1": "Ann", "formId": float64(3)}, received); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_SubmitFormValidationFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"is_valid":false,"validation_messages":{"1":"This field is required."},"page_number":1,"source_page_number":1}`)
	})

	result, err := client.SubmitForm(context.Background(), "3", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.IsValid || result.ValidationMessages["1"] != "This field is required." {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestClient_SubmitFormKeepsUnknownResultKeys(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"is_valid":true,"validation_messages":[],"page_number":0,"source_page_number":1,"confirmation_type":"redirect","confirmation_redirect":"https://example.com/thanks","resume_token":null,"entry_id":43}`)
	})

	result, err := client.SubmitForm(context.Background(), "3", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]json.RawMessage{
		"confirmation_redirect": json.RawMessage(`"https://example.com/thanks"`),
		"resume_token":          json.RawMessage(`null`),
	}
	if diff := cmp.Diff(want, result.Extra); diff != "" {
		t.Fatalf("extra mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", encoded, err)
	}
	wantOut := map[string]any{
		"is_valid":              true,
		"page_number":           float64(0),
		"source_page_number":    float64(1),
		"confirmation_type":     "redirect",
		"confirmation_redirect": "https://example.com/thanks",
		"resume_token":          nil,
		"entry_id":              float64(43),
	}
	if diff := cmp.Diff(wantOut, out); diff != "" {
		t.Fatalf("encoded result mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Available(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wp-json/gf/v2/forms" {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		http.NotFound(w, r)
	})
	if err := client.Available(context.Background()); err != nil {
		t.Fatalf("available: %v", err)
	}

	missing := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if err := missing.Available(context.Background()); !errors.Is(err, formsource.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNew_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}
