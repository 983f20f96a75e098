// Package sqlstore keeps form definitions and submitted entries in SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// Store is a formsource.Source backed by the forms and entries tables created
// by internal/database.Migrate.
type Store struct {
	db *sql.DB
}

var (
	_ formsource.Source = (*Store)(nil)
	_ formsource.Probe  = (*Store)(nil)
)

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Available implements formsource.Probe.
func (s *Store) Available(ctx context.Context) error {
	if s == nil || s.db == nil {
		return formsource.ErrUnavailable
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", formsource.ErrUnavailable, err)
	}
	return nil
}

// PutForm inserts or replaces a form definition.
func (s *Store) PutForm(ctx context.Context, form gravity.Form) error {
	if form.ID.IsZero() {
		return errors.New("sqlstore: form id is required")
	}
	definition, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("sqlstore: encode form %s: %w", form.ID, err)
	}

	ts := now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO forms (id, title, definition, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   definition = excluded.definition,
		   updated_at = excluded.updated_at`,
		form.ID.String(), form.Title, string(definition), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: insert form %s: %w", form.ID, err)
	}
	return nil
}

// SetConfirmation stores the confirmation message reported for accepted
// submissions of a form. An empty message restores the default.
func (s *Store) SetConfirmation(ctx context.Context, id gravity.ID, message string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE forms SET confirmation = ?, updated_at = ? WHERE id = ?`,
		message, now(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: set confirmation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: rows affected: %w", err)
	}
	if n == 0 {
		return formsource.ErrFormNotFound
	}
	return nil
}

// FetchForm implements formsource.Source.
func (s *Store) FetchForm(ctx context.Context, id gravity.ID) (gravity.Form, error) {
	var definition string
	err := s.db.QueryRowContext(ctx,
		`SELECT definition FROM forms WHERE id = ?`, id.String(),
	).Scan(&definition)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gravity.Form{}, formsource.ErrFormNotFound
		}
		return gravity.Form{}, fmt.Errorf("sqlstore: fetch form %s: %w", id, err)
	}

	form, err := gravity.DecodeForm([]byte(definition))
	if err != nil {
		return gravity.Form{}, fmt.Errorf("sqlstore: form %s: %w", id, err)
	}
	return form, nil
}

// Forms lists stored forms ordered by insertion.
func (s *Store) Forms(ctx context.Context) ([]gravity.Form, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT definition FROM forms ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list forms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []gravity.Form
	for rows.Next() {
		var definition string
		if err := rows.Scan(&definition); err != nil {
			return nil, fmt.Errorf("sqlstore: scan form: %w", err)
		}
		form, err := gravity.DecodeForm([]byte(definition))
		if err != nil {
			return nil, fmt.Errorf("sqlstore: decode form: %w", err)
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

// SubmitForm implements formsource.Source. Submissions that miss required
// inputs are reported invalid and not stored.
func (s *Store) SubmitForm(ctx context.Context, id gravity.ID, body map[string]any) (gravity.SubmissionResult, error) {
	var (
		definition   string
		confirmation string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT definition, confirmation FROM forms WHERE id = ?`, id.String(),
	).Scan(&definition, &confirmation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gravity.SubmissionResult{}, formsource.ErrFormNotFound
		}
		return gravity.SubmissionResult{}, fmt.Errorf("sqlstore: fetch form %s: %w", id, err)
	}

	form, err := gravity.DecodeForm([]byte(definition))
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("sqlstore: form %s: %w", id, err)
	}

	if messages := formsource.ValidateRequired(form, body); len(messages) > 0 {
		return gravity.SubmissionResult{
			IsValid:            false,
			ValidationMessages: messages,
			PageNumber:         1,
			SourcePageNumber:   1,
		}, nil
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("sqlstore: encode entry: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (form_id, body, created_at) VALUES (?, ?, ?)`,
		id.String(), string(encoded), now(),
	)
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("sqlstore: insert entry: %w", err)
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("sqlstore: last insert id: %w", err)
	}

	if confirmation == "" {
		confirmation = formsource.DefaultConfirmation
	}
	return gravity.SubmissionResult{
		IsValid:             true,
		PageNumber:          0,
		SourcePageNumber:    1,
		ConfirmationMessage: confirmation,
		ConfirmationType:    "message",
		EntryID:             gravity.ID(strconv.FormatInt(entryID, 10)),
	}, nil
}

// Entries returns the stored submissions of a form, oldest first.
func (s *Store) Entries(ctx context.Context, formID gravity.ID) ([]formsource.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM entries WHERE form_id = ? ORDER BY id`, formID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []formsource.Entry
	for rows.Next() {
		var (
			id   int64
			body string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("sqlstore: scan entry: %w", err)
		}
		decoded := make(map[string]any)
		if err := json.Unmarshal([]byte(body), &decoded); err != nil {
			return nil, fmt.Errorf("sqlstore: decode entry %d: %w", id, err)
		}
		out = append(out, formsource.Entry{
			ID:     gravity.ID(strconv.FormatInt(id, 10)),
			FormID: formID,
			Body:   decoded,
		})
	}
	return out, rows.Err()
}

// Seed stores forms, replacing existing definitions with the same id.
func (s *Store) Seed(ctx context.Context, forms []gravity.Form) error {
	for _, form := range forms {
		if err := s.PutForm(ctx, form); err != nil {
			return err
		}
	}
	return nil
}
