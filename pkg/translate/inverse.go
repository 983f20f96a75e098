package translate

import "github.com/goliatone/go-formbridge/pkg/gravity"

// FormIDKey names the form identifier in a Gravity Forms submission body.
const FormIDKey = "formId"

// InputKey returns the submission body key Gravity Forms expects for a field.
func InputKey(id gravity.ID) string {
	return "input_" + id.String()
}

// TranslateSubmission rebuilds a Gravity Forms submission body from a form.io
// payload. Each field takes the value of the first payload entry whose key
// equals the field's admin label; a field is matched at most once. Fields
// without an admin label are only matched by an entry with an empty key, so
// components keyed by their label are not mapped back. Values are copied as
// received and the body always carries formId.
func TranslateSubmission(form gravity.Form, payload Payload) map[string]any {
	body := make(map[string]any, len(form.Fields)+1)
	matched := make(map[gravity.ID]struct{}, len(form.Fields))

	for _, field := range form.Fields {
		for _, entry := range payload {
			if _, done := matched[field.ID]; done {
				break
			}
			if entry.Key != field.AdminLabel {
				continue
			}
			body[InputKey(field.ID)] = entry.Value
			matched[field.ID] = struct{}{}
		}
	}

	body[FormIDKey] = form.ID
	return body
}
