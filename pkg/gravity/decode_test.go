package gravity

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeForm_JSON(t *testing.T) {
	raw := []byte(`{
		"id": 3,
		"title": "Contact",
		"fields": [
			{"id": 1, "label": "Name", "type": "text", "isRequired": true, "choices": ""},
			{"id": "2", "label": "Colour", "type": "radio", "choices": [
				{"text": "Red", "value": "red", "isSelected": true}
			]},
			{"id": 3, "label": "Tags", "type": "checkbox", "choices": []}
		],
		"button": {"type": "text", "text": "Send"}
	}`)

	form, err := DecodeForm(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	send := "Send"
	want := Form{
		ID:    "3",
		Title: "Contact",
		Fields: []Field{
			{ID: "1", Label: "Name", Type: "text", IsRequired: true},
			{ID: "2", Label: "Colour", Type: "radio", Choices: Choices{{Text: "Red", Value: "red", IsSelected: true}}},
			{ID: "3", Label: "Tags", Type: "checkbox", Choices: Choices{}},
		},
		Button: &Button{Type: "text", Text: &send},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if form.Fields[0].Choices.Present() {
		t.Fatalf("expected empty-string choices to decode as absent")
	}
	if !form.Fields[2].Choices.Present() {
		t.Fatalf("expected [] choices to decode as present")
	}
}

func TestDecodeForm_YAML(t *testing.T) {
	raw := []byte(`
id: 8
fields:
  - id: 1
    label: Email
    adminLabel: email
    type: email
    isRequired: true
  - id: 2
    label: Plan
    type: select
    choices:
      - text: Basic
        value: basic
      - text: Pro
        value: 2
`)

	form, err := DecodeForm(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if form.ID != "8" {
		t.Fatalf("unexpected id %q", form.ID)
	}
	if len(form.Fields) != 2 || form.Fields[0].AdminLabel != "email" {
		t.Fatalf("unexpected fields: %#v", form.Fields)
	}
	if got := form.Fields[1].Choices[1].Value; got != "2" {
		t.Fatalf("expected scalar choice value decoded as text, got %q", got)
	}
	if form.Button != nil {
		t.Fatalf("expected no button")
	}
}

func TestDecodeForm_RejectsEmptyAndGarbage(t *testing.T) {
	if _, err := DecodeForm([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := DecodeForm([]byte("{not: [valid")); err == nil {
		t.Fatalf("expected error for invalid document")
	}
}

func TestButtonLabel(t *testing.T) {
	empty := ""
	if got := (Button{}).Label(); got != DefaultButtonText {
		t.Fatalf("expected default label, got %q", got)
	}
	if got := (Button{Text: &empty}).Label(); got != "" {
		t.Fatalf("expected explicit empty label kept, got %q", got)
	}
}

func TestFieldKey(t *testing.T) {
	if got := (Field{Label: "Name"}).Key(); got != "Name" {
		t.Fatalf("expected label fallback, got %q", got)
	}
	if got := (Field{Label: "Name", AdminLabel: "name"}).Key(); got != "name" {
		t.Fatalf("expected admin label, got %q", got)
	}
}

func TestField_ChoicesSurviveJSONRoundTrip(t *testing.T) {
	in := Form{ID: "1", Fields: []Field{
		{ID: "1", Type: TypeCheckbox, Choices: Choices{}},
		{ID: "2", Type: TypeText},
	}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Form
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Fields[0].Choices.Present() || out.Fields[1].Choices.Present() {
		t.Fatalf("choices presence lost in %s", data)
	}
}
