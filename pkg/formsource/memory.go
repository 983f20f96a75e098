package formsource

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Entry is a stored submission.
type Entry struct {
	ID     gravity.ID
	FormID gravity.ID
	Body   map[string]any
}

// Memory is an in-process Source. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	forms   map[gravity.ID]gravity.Form
	entries []Entry
	nextID  int
}

var (
	_ Source = (*Memory)(nil)
	_ Probe  = (*Memory)(nil)
)

// NewMemory returns a Memory holding forms.
func NewMemory(forms ...gravity.Form) *Memory {
	m := &Memory{forms: make(map[gravity.ID]gravity.Form, len(forms))}
	for _, form := range forms {
		m.forms[form.ID] = form
	}
	return m
}

// Put stores or replaces a form.
func (m *Memory) Put(form gravity.Form) error {
	if form.ID.IsZero() {
		return fmt.Errorf("formsource: form id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms[form.ID] = form
	return nil
}

// Forms returns the stored forms ordered by id.
func (m *Memory) Forms() []gravity.Form {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]gravity.Form, 0, len(m.forms))
	for _, form := range m.forms {
		out = append(out, form)
	}
	sortForms(out)
	return out
}

// Available implements Probe; memory sources are always available.
func (m *Memory) Available(ctx context.Context) error {
	return ctx.Err()
}

// FetchForm implements Source.
func (m *Memory) FetchForm(ctx context.Context, id gravity.ID) (gravity.Form, error) {
	if err := ctx.Err(); err != nil {
		return gravity.Form{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	form, ok := m.forms[id]
	if !ok {
		return gravity.Form{}, ErrFormNotFound
	}
	return form, nil
}

// SubmitForm implements Source. Invalid submissions are reported in the
// result and not stored.
func (m *Memory) SubmitForm(ctx context.Context, id gravity.ID, body map[string]any) (gravity.SubmissionResult, error) {
	if err := ctx.Err(); err != nil {
		return gravity.SubmissionResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[id]
	if !ok {
		return gravity.SubmissionResult{}, ErrFormNotFound
	}

	if messages := ValidateRequired(form, body); len(messages) > 0 {
		return gravity.SubmissionResult{
			IsValid:            false,
			ValidationMessages: messages,
			PageNumber:         1,
			SourcePageNumber:   1,
		}, nil
	}

	m.nextID++
	entryID := gravity.ID(strconv.Itoa(m.nextID))
	m.entries = append(m.entries, Entry{ID: entryID, FormID: id, Body: cloneBody(body)})

	return gravity.SubmissionResult{
		IsValid:             true,
		PageNumber:          0,
		SourcePageNumber:    1,
		ConfirmationMessage: DefaultConfirmation,
		ConfirmationType:    "message",
		EntryID:             entryID,
	}, nil
}

// Entries returns the stored submissions for a form.
func (m *Memory) Entries(formID gravity.ID) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Entry
	for _, entry := range m.entries {
		if entry.FormID == formID {
			out = append(out, Entry{ID: entry.ID, FormID: entry.FormID, Body: cloneBody(entry.Body)})
		}
	}
	return out
}

func cloneBody(body map[string]any) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = v
	}
	return out
}
