package translate

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbridge/pkg/formio"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy

	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// SanitizeMarkup returns a Decorator that strips markup from component labels
// and reduces descriptions to basic inline formatting and links. Gravity Forms
// stores editor HTML in both.
func SanitizeMarkup() Decorator {
	return DecoratorFunc(func(schema *formio.Schema) error {
		if schema == nil {
			return nil
		}
		for i := range schema.Components {
			component := &schema.Components[i]
			component.Label = sanitizeLabel(component.Label)
			if component.FieldAttrs != nil {
				component.Description = sanitizeDescription(component.Description)
			}
		}
		return nil
	})
}

func sanitizeLabel(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(raw))
}

func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "br", "b", "strong", "i", "em", "u", "ul", "ol", "li", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AllowAttrs("class").OnElements("span", "p")
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
