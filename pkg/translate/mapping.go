package translate

import (
	"github.com/goliatone/go-formbridge/pkg/formio"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

var typeTable = map[string]string{
	gravity.TypeString:      formio.TypeTextfield,
	gravity.TypeText:        formio.TypeTextfield,
	gravity.TypeInt:         formio.TypeNumber,
	gravity.TypeInteger:     formio.TypeNumber,
	gravity.TypeFloat:       formio.TypeNumber,
	gravity.TypeBoolean:     formio.TypeCheckbox,
	gravity.TypeConsent:     formio.TypeCheckbox,
	gravity.TypeDate:        formio.TypeDay,
	gravity.TypePhone:       formio.TypePhoneNumber,
	gravity.TypeMultiselect: formio.TypeSelect,
}

// ResolveType maps a Gravity Forms field type onto a form.io component type.
// Unknown types pass through unchanged.
func ResolveType(sourceType string) string {
	if target, ok := typeTable[sourceType]; ok {
		return target
	}
	return sourceType
}

var sizeTable = map[string]string{
	gravity.SizeExtraSmall: "xs",
	gravity.SizeSmall:      "sm",
	gravity.SizeLarge:      "lg",
	gravity.SizeExtraLarge: "xl",
}

// ResolveSize maps a Gravity Forms field size onto a form.io size. Medium,
// empty and unknown sizes have no mapping and report false.
func ResolveSize(size string) (string, bool) {
	target, ok := sizeTable[size]
	return target, ok
}

// ResolveKey returns the component key for a field: the admin label when it
// is set, otherwise the label.
func ResolveKey(field gravity.Field) string {
	return field.Key()
}

type classPair struct {
	base     string
	required string
}

var (
	textboxClass = classPair{
		base:     "utrecht-textbox utrecht-textbox--html-input",
		required: " utrecht-textbox--required",
	}

	classTable = map[string]classPair{
		formio.TypeTextfield: textboxClass,
		formio.TypeTextarea: {
			base:     "utrecht-textarea utrecht-textarea--html-textarea",
			required: " utrecht-textarea--required",
		},
		formio.TypeNumber: {
			base:     "utrecht-number utrecht-number--html-number",
			required: " utrecht-number--required",
		},
		formio.TypeSelect:      {base: "utrecht-select utrecht-select--html-select"},
		formio.TypeSelectboxes: {base: "utrecht-select utrecht-select--html-select"},
		formio.TypeCheckbox:    {base: "utrecht-checkbox utrecht-checkbox--html-input"},
		formio.TypeRadio:       {base: "utrecht-radio-button utrecht-radio-button--html-input"},
	}
)

// ButtonClass is the custom class of the submit button.
const ButtonClass = "utrecht-button"

// CustomClass returns the NL Design System class list for a resolved
// component type. Types without an entry are styled as text boxes.
func CustomClass(componentType string, required bool) string {
	pair, ok := classTable[componentType]
	if !ok {
		pair = textboxClass
	}
	if required {
		return pair.base + pair.required
	}
	return pair.base
}
