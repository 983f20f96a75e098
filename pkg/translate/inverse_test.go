package translate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

func TestTranslateSubmission_MapsAdminLabelsToInputs(t *testing.T) {
	form := gravity.Form{
		ID: "12",
		Fields: []gravity.Field{
			{ID: "1", AdminLabel: "first_name"},
			{ID: "2", AdminLabel: "email"},
		},
	}
	payload := PayloadFromMap(map[string]any{"first_name": "Ann", "email": "a@x.com"})

	got := TranslateSubmission(form, payload)
	want := map[string]any{
		"input_1": "Ann",
		"input_2": "a@x.com",
		"formId":  gravity.ID("12"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSubmission_FirstEntryWinsPerField(t *testing.T) {
	form := gravity.Form{ID: "1", Fields: []gravity.Field{{ID: "3", AdminLabel: "name"}}}
	payload := Payload{
		{Key: "name", Value: "first"},
		{Key: "name", Value: "second"},
	}

	got := TranslateSubmission(form, payload)
	if got["input_3"] != "first" {
		t.Fatalf("expected first matching entry, got %#v", got["input_3"])
	}
}

func TestTranslateSubmission_UnmatchedKeysAreDropped(t *testing.T) {
	form := gravity.Form{ID: "1", Fields: []gravity.Field{{ID: "1", AdminLabel: "name"}}}
	got := TranslateSubmission(form, PayloadFromMap(map[string]any{"name": "Ann", "extra": true}))
	if len(got) != 2 {
		t.Fatalf("expected input_1 and formId only, got %#v", got)
	}
}

// Components keyed by their label (empty admin label) are emitted by the
// forward translator but cannot be matched back: the inverse compares raw
// admin labels only. This pins the current behaviour.
func TestTranslateSubmission_LabelKeyedFieldsAreNotMatched(t *testing.T) {
	form := gravity.Form{
		ID: "5",
		Fields: []gravity.Field{
			{ID: "1", Label: "Name", Type: "text"},
			{ID: "2", Label: "Email", AdminLabel: "email", Type: "email"},
		},
	}

	schema := Translate(form)
	if schema.Components[0].Key != "Name" {
		t.Fatalf("expected forward key to fall back to label, got %q", schema.Components[0].Key)
	}

	got := TranslateSubmission(form, PayloadFromMap(map[string]any{"Name": "Ann", "email": "a@x.com"}))
	if _, ok := got["input_1"]; ok {
		t.Fatalf("label-keyed field was reverse matched: %#v", got)
	}
	if got["input_2"] != "a@x.com" {
		t.Fatalf("expected admin-labelled field matched, got %#v", got)
	}
}

func TestTranslateSubmission_ValuesPassThroughUntouched(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"qty": 10.50, "tags": ["a", "b"], "meta": {"x": null}}`))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	form := gravity.Form{ID: "9", Fields: []gravity.Field{
		{ID: "1", AdminLabel: "qty"},
		{ID: "2", AdminLabel: "tags"},
		{ID: "3", AdminLabel: "meta"},
	}}

	out, err := json.Marshal(TranslateSubmission(form, payload))
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	want := `{"formId":9,"input_1":10.50,"input_2":["a","b"],"input_3":{"x":null}}`
	if string(out) != want {
		t.Fatalf("unexpected body:\nwant %s\ngot  %s", want, out)
	}
}

func TestTranslateSubmission_EmptyPayload(t *testing.T) {
	got := TranslateSubmission(gravity.Form{ID: "2", Fields: []gravity.Field{{ID: "1", AdminLabel: "a"}}}, nil)
	if diff := cmp.Diff(map[string]any{"formId": gravity.ID("2")}, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}
