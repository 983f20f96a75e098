package formio

import "encoding/json"

// DisplayForm is the only display mode emitted.
const DisplayForm = "form"

// Component types the bridge emits or reasons about.
const (
	TypeTextfield   = "textfield"
	TypeTextarea    = "textarea"
	TypeNumber      = "number"
	TypeCheckbox    = "checkbox"
	TypeDay         = "day"
	TypePhoneNumber = "phoneNumber"
	TypeSelect      = "select"
	TypeSelectboxes = "selectboxes"
	TypeRadio       = "radio"
	TypeButton      = "button"
)

// Widget types.
const (
	WidgetInput     = "input"
	WidgetChoicesJS = "choicesjs"
)

// DataSrcValues tells form.io to read options from the inline values list.
const DataSrcValues = "values"

// Validation carries the validation block of a component.
type Validation struct {
	Required bool `json:"required"`
}

// Widget selects the input widget.
type Widget struct {
	Type string `json:"type"`
}

// Value is one option of a choice component.
type Value struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Data nests option values for select-like components.
type Data struct {
	Values []Value `json:"values"`
}

// FieldAttrs holds the attributes every field component carries, even when
// empty: id is null for a field without one and description is "".
type FieldAttrs struct {
	ID          any    `json:"id"`
	Description string `json:"description"`
}

// Component is a single form.io component. Theme, DisableOnInvalid, Action
// and TableView are only set on the submit button, which has no FieldAttrs.
type Component struct {
	Input bool   `json:"input"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Key   string `json:"key"`
	*FieldAttrs
	Size         string      `json:"size,omitempty"`
	Hidden       bool        `json:"hidden"`
	Validation   *Validation `json:"validation,omitempty"`
	Widget       *Widget     `json:"widget,omitempty"`
	DefaultValue any         `json:"defaultValue"`
	CustomClass  string      `json:"customClass"`
	DataSrc      string      `json:"dataSrc,omitempty"`
	Values       []Value     `json:"values,omitempty"`
	Data         *Data       `json:"data,omitempty"`
	Multiple     bool        `json:"multiple,omitempty"`

	Theme            string `json:"theme,omitempty"`
	DisableOnInvalid bool   `json:"disableOnInvalid,omitempty"`
	Action           string `json:"action,omitempty"`
	TableView        *bool  `json:"tableView,omitempty"`
}

// Schema is a form.io form document.
type Schema struct {
	Display    string      `json:"display"`
	Components []Component `json:"components"`
}

// MarshalJSON keeps components encoded as an array when empty.
func (s Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	out := plain(s)
	if out.Components == nil {
		out.Components = []Component{}
	}
	return json.Marshal(out)
}

// Component looks up a component by key.
func (s Schema) Component(key string) (Component, bool) {
	for _, component := range s.Components {
		if component.Key == key {
			return component, true
		}
	}
	return Component{}, false
}
