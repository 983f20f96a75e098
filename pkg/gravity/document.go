package gravity

import (
	"errors"
	"fmt"
)

// Document is an undecoded form definition together with where it was read
// from.
type Document struct {
	Source Source
	Data   []byte
}

// NewDocument copies data and rejects a zero source or an empty payload.
func NewDocument(src Source, data []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("gravity: document source is required")
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("gravity: form document %s is empty", src.Location)
	}
	return Document{Source: src, Data: append([]byte(nil), data...)}, nil
}

// Form decodes the definition. A form without an id is keyed by the stem of
// its location, so forms/12.yaml describes form 12.
func (d Document) Form() (Form, error) {
	form, err := DecodeForm(d.Data)
	if err != nil {
		return Form{}, fmt.Errorf("%w (%s)", err, d.Source.Location)
	}
	if form.ID.IsZero() {
		form.ID = ID(d.Source.Stem())
	}
	return form, nil
}
