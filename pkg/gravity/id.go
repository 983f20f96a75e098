package gravity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID identifies forms, fields and entries. Gravity Forms uses integers but the
// REST API and fixture files mix numbers and strings, so the value is kept as
// text and re-encoded as a JSON number whenever it is a canonical unsigned
// integer.
type ID string

// ParseID converts a loosely typed request value into an ID. The boolean is
// false when v is nil or of an unsupported type.
func ParseID(v any) (ID, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case ID:
		return value, true
	case string:
		return ID(value), true
	case json.Number:
		return ID(value.String()), true
	case int:
		return ID(strconv.Itoa(value)), true
	case int32:
		return ID(strconv.FormatInt(int64(value), 10)), true
	case int64:
		return ID(strconv.FormatInt(value, 10)), true
	case uint:
		return ID(strconv.FormatUint(uint64(value), 10)), true
	case uint32:
		return ID(strconv.FormatUint(uint64(value), 10)), true
	case uint64:
		return ID(strconv.FormatUint(value, 10)), true
	case float64:
		if value == math.Trunc(value) && !math.IsInf(value, 0) {
			return ID(strconv.FormatFloat(value, 'f', -1, 64)), true
		}
		return ID(strconv.FormatFloat(value, 'g', -1, 64)), true
	case fmt.Stringer:
		return ID(value.String()), true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// Numeric reports whether the identifier is an unsigned integer in canonical
// form. "007" is not: it only survives as a string.
func (id ID) Numeric() bool {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatUint(n, 10) == string(id)
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.Numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("gravity: decode id: %w", err)
		}
		*id = ID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("gravity: decode id: %w", err)
	}
	if f, err := number.Float64(); err == nil && f == math.Trunc(f) {
		if i, err := number.Int64(); err == nil {
			*id = ID(strconv.FormatInt(i, 10))
			return nil
		}
		*id = ID(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*id = ID(number.String())
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("gravity: id must be a scalar (line %d)", node.Line)
	}
	if node.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = ID(node.Value)
	return nil
}
