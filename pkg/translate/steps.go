package translate

import (
	"github.com/goliatone/go-formbridge/pkg/formio"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Step names, in the order DefaultSteps runs them.
const (
	StepType        = "type"
	StepSize        = "size"
	StepKey         = "key"
	StepBase        = "base"
	StepClass       = "class"
	StepConsent     = "consent"
	StepMultiple    = "multiple"
	StepSelectboxes = "selectboxes"
	StepChoices     = "choices"
)

// StepFunc derives the next partial component from the previous one and the
// source field. Implementations must not mutate slices or pointers they did
// not allocate.
type StepFunc func(component formio.Component, field gravity.Field) formio.Component

// Step is a named pipeline stage.
type Step struct {
	Name  string
	Apply StepFunc
}

// DefaultSteps returns the field pipeline used by NewForward.
func DefaultSteps() []Step {
	return []Step{
		{Name: StepType, Apply: resolveTypeStep},
		{Name: StepSize, Apply: resolveSizeStep},
		{Name: StepKey, Apply: resolveKeyStep},
		{Name: StepBase, Apply: baseStep},
		{Name: StepClass, Apply: customClassStep},
		{Name: StepConsent, Apply: consentLabelStep},
		{Name: StepMultiple, Apply: multipleStep},
		{Name: StepSelectboxes, Apply: selectboxesStep},
		{Name: StepChoices, Apply: choicesStep},
	}
}

func resolveTypeStep(c formio.Component, f gravity.Field) formio.Component {
	c.Type = ResolveType(f.Type)
	return c
}

func resolveSizeStep(c formio.Component, f gravity.Field) formio.Component {
	size, ok := ResolveSize(f.Size)
	if !ok {
		c.Size = ""
		return c
	}
	c.Size = size
	return c
}

func resolveKeyStep(c formio.Component, f gravity.Field) formio.Component {
	c.Key = ResolveKey(f)
	return c
}

func baseStep(c formio.Component, f gravity.Field) formio.Component {
	c.Input = true
	c.Label = f.Label
	attrs := &formio.FieldAttrs{Description: f.Description}
	if !f.ID.IsZero() {
		attrs.ID = f.ID
	}
	c.FieldAttrs = attrs
	c.Hidden = f.Visibility != gravity.VisibilityVisible
	c.Validation = &formio.Validation{Required: f.IsRequired}
	c.Widget = &formio.Widget{Type: formio.WidgetInput}
	c.DefaultValue = f.DefaultValue
	return c
}

// customClassStep keys on the type resolved so far; the later selectboxes
// promotion does not restyle the component.
func customClassStep(c formio.Component, f gravity.Field) formio.Component {
	c.CustomClass = CustomClass(c.Type, f.IsRequired)
	return c
}

func consentLabelStep(c formio.Component, f gravity.Field) formio.Component {
	if f.Type == gravity.TypeConsent {
		c.Label = f.CheckboxLabel
	}
	return c
}

func multipleStep(c formio.Component, f gravity.Field) formio.Component {
	if f.Type == gravity.TypeMultiselect {
		c.Multiple = true
	}
	return c
}

func selectboxesStep(c formio.Component, f gravity.Field) formio.Component {
	if f.Type == gravity.TypeCheckbox && f.Choices.Present() {
		c.Type = formio.TypeSelectboxes
	}
	return c
}

func choicesStep(c formio.Component, f gravity.Field) formio.Component {
	if len(f.Choices) == 0 {
		return c
	}

	c.Widget = &formio.Widget{Type: formio.WidgetChoicesJS}
	c.DataSrc = formio.DataSrcValues

	flat := c.Type == formio.TypeRadio || c.Type == formio.TypeSelectboxes
	values := make([]formio.Value, 0, len(f.Choices))
	for _, choice := range f.Choices {
		values = append(values, formio.Value{Label: choice.Text, Value: choice.Value})
		if choice.IsSelected {
			c.DefaultValue = choice.Value
		}
	}

	if flat {
		c.Values = append(append([]formio.Value(nil), c.Values...), values...)
		return c
	}

	data := formio.Data{}
	if c.Data != nil {
		data.Values = append(data.Values, c.Data.Values...)
	}
	data.Values = append(data.Values, values...)
	c.Data = &data
	return c
}
