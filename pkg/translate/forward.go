package translate

import (
	"github.com/goliatone/go-formbridge/pkg/formio"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Option customises a Forward translator.
type Option func(*Forward)

// WithSteps replaces the field pipeline. Steps without an Apply func are
// skipped.
func WithSteps(steps ...Step) Option {
	return func(f *Forward) {
		f.steps = append([]Step(nil), steps...)
	}
}

// Forward converts Gravity Forms definitions into form.io schemas.
type Forward struct {
	steps []Step
}

// NewForward constructs a Forward translator running DefaultSteps unless
// WithSteps says otherwise.
func NewForward(options ...Option) *Forward {
	f := &Forward{steps: DefaultSteps()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Steps returns the names of the configured pipeline, in order.
func (f *Forward) Steps() []string {
	names := make([]string, 0, len(f.steps))
	for _, step := range f.steps {
		names = append(names, step.Name)
	}
	return names
}

// Translate builds the form.io schema for form. Components follow the field
// order of form; a submit button is appended last when the form declares one.
func (f *Forward) Translate(form gravity.Form) formio.Schema {
	components := make([]formio.Component, 0, len(form.Fields)+1)
	for _, field := range form.Fields {
		components = append(components, f.Component(field))
	}
	if form.Button != nil {
		components = append(components, SubmitButton(*form.Button))
	}
	return formio.Schema{
		Display:    formio.DisplayForm,
		Components: components,
	}
}

// Component runs a single field through the pipeline.
func (f *Forward) Component(field gravity.Field) formio.Component {
	var component formio.Component
	for _, step := range f.steps {
		if step.Apply == nil {
			continue
		}
		component = step.Apply(component, field)
	}
	return component
}

// SubmitButton builds the trailing submit component for button.
func SubmitButton(button gravity.Button) formio.Component {
	tableView := false
	return formio.Component{
		Type:             formio.TypeButton,
		Theme:            "primary",
		DisableOnInvalid: true,
		Action:           "submit",
		Size:             "md",
		Key:              "submit",
		TableView:        &tableView,
		Label:            button.Label(),
		Input:            true,
		CustomClass:      ButtonClass,
	}
}

var defaultForward = NewForward()

// Translate converts form using the default pipeline.
func Translate(form gravity.Form) formio.Schema {
	return defaultForward.Translate(form)
}
