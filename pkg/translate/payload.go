package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrPayloadNotObject reports a submission body that is not a JSON object.
var ErrPayloadNotObject = errors.New("translate: payload must be a JSON object")

// Entry is one key/value pair of a submitted payload.
type Entry struct {
	Key   string
	Value any
}

// Payload is a submitted form.io payload in the order the client sent it.
type Payload []Entry

// DecodePayload reads a JSON object into a Payload, keeping key order and
// duplicate keys. Numbers are kept as json.Number so they re-encode exactly.
// An empty body or a JSON null yields an empty payload.
func DecodePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("translate: decode payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrPayloadNotObject
	}

	payload := Payload{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("translate: decode payload: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("translate: decode payload: unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("translate: decode payload value %q: %w", key, err)
		}
		payload = append(payload, Entry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("translate: decode payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("translate: decode payload: trailing data after object")
	}
	return payload, nil
}

// PayloadFromMap converts an already decoded payload. Map order is undefined
// so entries are sorted by key.
func PayloadFromMap(values map[string]any) Payload {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	payload := make(Payload, 0, len(keys))
	for _, key := range keys {
		payload = append(payload, Entry{Key: key, Value: values[key]})
	}
	return payload
}

// Map flattens the payload; later duplicates win.
func (p Payload) Map() map[string]any {
	out := make(map[string]any, len(p))
	for _, entry := range p {
		out[entry.Key] = entry.Value
	}
	return out
}
