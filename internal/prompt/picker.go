package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// ErrNoForms is returned when there is nothing to pick from.
var ErrNoForms = errors.New("prompt: no forms to pick from")

// FormLabel describes a form in a picker list.
func FormLabel(form gravity.Form) string {
	title := form.Title
	if title == "" {
		title = "(untitled)"
	}
	noun := "fields"
	if len(form.Fields) == 1 {
		noun = "field"
	}
	return fmt.Sprintf("#%s %s (%d %s)", form.ID, title, len(form.Fields), noun)
}

// PickForm lets the user choose one of forms. A single form is returned
// without asking.
func PickForm(ctx context.Context, driver Driver, forms []gravity.Form) (gravity.Form, error) {
	switch len(forms) {
	case 0:
		return gravity.Form{}, ErrNoForms
	case 1:
		return forms[0], nil
	}
	if driver == nil {
		return gravity.Form{}, errors.New("prompt: driver is nil")
	}

	options := make([]string, len(forms))
	for i, form := range forms {
		options[i] = FormLabel(form)
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Form to translate",
		Options:  options,
		PageSize: 15,
	})
	if err != nil {
		return gravity.Form{}, err
	}
	if idx < 0 || idx >= len(forms) {
		return gravity.Form{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return forms[idx], nil
}
