package formsource

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

func contactForm() gravity.Form {
	return gravity.Form{
		ID: "1",
		Fields: []gravity.Field{
			{ID: "1", Label: "Name", AdminLabel: "name", Type: "text", IsRequired: true},
			{ID: "2", Label: "Notes", Type: "textarea"},
		},
	}
}

func TestMemory_FetchForm(t *testing.T) {
	store := NewMemory(contactForm())

	form, err := store.FetchForm(context.Background(), "1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if diff := cmp.Diff(contactForm(), form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.FetchForm(context.Background(), "2"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestMemory_SubmitFormStoresValidEntries(t *testing.T) {
	store := NewMemory(contactForm())
	ctx := context.Background()

	result, err := store.SubmitForm(ctx, "1", map[string]any{"input_1": "Ann", "formId": gravity.ID("1")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.IsValid || result.EntryID != "1" || result.ConfirmationMessage != DefaultConfirmation {
		t.Fatalf("unexpected result: %#v", result)
	}

	entries := store.Entries("1")
	if len(entries) != 1 || entries[0].Body["input_1"] != "Ann" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestMemory_SubmitFormReportsMissingRequired(t *testing.T) {
	store := NewMemory(contactForm())

	result, err := store.SubmitForm(context.Background(), "1", map[string]any{"input_2": "hi"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.IsValid {
		t.Fatalf("expected invalid submission")
	}
	if diff := cmp.Diff(map[string]string{"1": RequiredMessage}, result.ValidationMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if len(store.Entries("1")) != 0 {
		t.Fatalf("expected invalid submission not stored")
	}
}

func TestMemory_SubmitUnknownForm(t *testing.T) {
	store := NewMemory()
	if _, err := store.SubmitForm(context.Background(), "9", nil); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestMemory_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemory(contactForm()).FetchForm(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.json": {Data: []byte(`{"id": 2, "title": "Contact", "fields": []}`)},
		"forms/10.yaml":      {Data: []byte("title: Survey\nfields:\n  - id: 1\n    label: Q\n    type: text\n")},
		"forms/readme.txt":   {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	forms := store.Forms()
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
	if forms[0].ID != "2" || forms[1].ID != "10" {
		t.Fatalf("expected numeric id order, got %q, %q", forms[0].ID, forms[1].ID)
	}
	if forms[1].Title != "Survey" {
		t.Fatalf("expected file stem id for YAML form, got %#v", forms[1])
	}
}

func TestLoadFS_RejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"id": 1, "fields": []}`)},
		"b.json": {Data: []byte(`{"id": "1", "fields": []}`)},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidateRequired(t *testing.T) {
	form := gravity.Form{Fields: []gravity.Field{
		{ID: "1", IsRequired: true},
		{ID: "2", IsRequired: true},
		{ID: "3", IsRequired: true},
		{ID: "4"},
	}}
	messages := ValidateRequired(form, map[string]any{"input_1": "", "input_2": []any{}, "input_3": false})
	want := map[string]string{"1": RequiredMessage, "2": RequiredMessage}
	if diff := cmp.Diff(want, messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
