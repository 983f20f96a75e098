package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// LoadForm reads a Gravity Forms fixture (JSON or YAML). Failures abort the
// test to keep table tests short.
func LoadForm(t *testing.T, path string) gravity.Form {
	t.Helper()

	form, err := LoadFormFromPath(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadFormFromPath returns a form without requiring testing.T so fixtures can
// be wired from setup helpers.
func LoadFormFromPath(path string) (gravity.Form, error) {
	if path == "" {
		return gravity.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return gravity.Form{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	doc, err := gravity.NewDocument(gravity.FileSource(path), data)
	if err != nil {
		return gravity.Form{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc.Form()
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true when the golden was written so the caller can skip asserting.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareJSON encodes got and diffs it against the want document after both
// are decoded into generic JSON values, so key order and number types do not
// matter. An empty string means equal.
func CompareJSON(t *testing.T, want []byte, got any) string {
	t.Helper()

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	return cmp.Diff(normalise(t, want), normalise(t, encoded))
}

func normalise(t *testing.T, data []byte) any {
	t.Helper()
	var out any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
