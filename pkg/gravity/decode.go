package gravity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeForm parses a form definition from JSON, falling back to YAML for
// hand-written fixtures.
func DecodeForm(data []byte) (Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, errors.New("gravity: form document is empty")
	}

	var form Form
	jsonErr := json.Unmarshal(data, &form)
	if jsonErr == nil {
		return form, nil
	}

	form = Form{}
	if err := yaml.Unmarshal(data, &form); err == nil {
		return form, nil
	}

	return Form{}, fmt.Errorf("gravity: decode form: invalid JSON or YAML: %w", jsonErr)
}
