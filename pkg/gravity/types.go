package gravity

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Field types the translator has explicit rules for. Any other value is
// carried through unchanged.
const (
	TypeString      = "string"
	TypeText        = "text"
	TypeInt         = "int"
	TypeInteger     = "integer"
	TypeFloat       = "float"
	TypeBoolean     = "boolean"
	TypeConsent     = "consent"
	TypeDate        = "date"
	TypePhone       = "phone"
	TypeMultiselect = "multiselect"
	TypeCheckbox    = "checkbox"
)

// Field sizes. SizeMedium is the implicit default.
const (
	SizeExtraSmall = "extra-small"
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extra-large"
)

// VisibilityVisible marks a rendered field; every other value hides it.
const VisibilityVisible = "visible"

// DefaultButtonText labels the submit button when the form omits one.
const DefaultButtonText = "Submit"

// Choice is a single option of a choice-bearing field.
type Choice struct {
	Text       string `json:"text" yaml:"text"`
	Value      string `json:"value" yaml:"value"`
	IsSelected bool   `json:"isSelected" yaml:"isSelected"`
}

// Choices distinguishes absent choices (nil) from an empty list. The REST API
// reports "" for fields without choices, which decodes as absent.
type Choices []Choice

// UnmarshalJSON implements json.Unmarshaler.
func (c *Choices) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		*c = nil
		return nil
	}
	var list []Choice
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	if list == nil {
		list = []Choice{}
	}
	*c = list
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Choices) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = nil
		return nil
	}
	var list []Choice
	if err := node.Decode(&list); err != nil {
		return err
	}
	if list == nil {
		list = []Choice{}
	}
	*c = list
	return nil
}

// Present reports whether the field declared choices at all, even an empty
// list.
func (c Choices) Present() bool {
	return c != nil
}

// Field is one Gravity Forms field definition.
type Field struct {
	ID            ID      `json:"id" yaml:"id"`
	Label         string  `json:"label" yaml:"label"`
	AdminLabel    string  `json:"adminLabel,omitempty" yaml:"adminLabel,omitempty"`
	Type          string  `json:"type" yaml:"type"`
	Size          string  `json:"size,omitempty" yaml:"size,omitempty"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	Visibility    string  `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	IsRequired    bool    `json:"isRequired" yaml:"isRequired"`
	DefaultValue  any     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Choices       Choices `json:"choices" yaml:"choices,omitempty"`
	CheckboxLabel string  `json:"checkboxLabel,omitempty" yaml:"checkboxLabel,omitempty"`
}

// Key returns the machine key of the field: the admin label when set,
// otherwise the display label.
func (f Field) Key() string {
	if f.AdminLabel != "" {
		return f.AdminLabel
	}
	return f.Label
}

// Button describes the form submit button. A nil Text means the form did not
// name the button.
type Button struct {
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Text     *string `json:"text,omitempty" yaml:"text,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Label returns the button text or DefaultButtonText when none was given.
func (b Button) Label() string {
	if b.Text == nil {
		return DefaultButtonText
	}
	return *b.Text
}

// Form is a Gravity Forms form definition.
type Form struct {
	ID          ID      `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
	Button      *Button `json:"button,omitempty" yaml:"button,omitempty"`
}

// SubmissionResult mirrors the Gravity Forms submit_form result. It is handed
// back to callers untouched.
type SubmissionResult struct {
	IsValid             bool              `json:"is_valid"`
	ValidationMessages  map[string]string `json:"validation_messages,omitempty"`
	PageNumber          int               `json:"page_number"`
	SourcePageNumber    int               `json:"source_page_number"`
	ConfirmationMessage string            `json:"confirmation_message,omitempty"`
	ConfirmationType    string            `json:"confirmation_type,omitempty"`
	EntryID             ID                `json:"entry_id,omitempty"`

	// Extra holds the keys the platform returned that have no field above,
	// such as confirmation_redirect or resume_token.
	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the typed fields and then every Extra key they do not
// already cover.
func (r SubmissionResult) MarshalJSON() ([]byte, error) {
	type plain SubmissionResult
	data, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+7)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}
