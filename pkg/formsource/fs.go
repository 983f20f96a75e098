package formsource

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// LoadFS walks fsys and loads every JSON/YAML form document into a Memory
// source. A document without an id takes its file name stem as id (see
// gravity.Document.Form). Duplicate ids are rejected.
func LoadFS(fsys fs.FS) (*Memory, error) {
	store := NewMemory()
	if fsys == nil {
		return store, nil
	}

	origins := make(map[gravity.ID]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formsource: read %s: %w", path, err)
		}
		doc, err := gravity.NewDocument(gravity.FSSource(path), data)
		if err != nil {
			return fmt.Errorf("formsource: %s: %w", path, err)
		}
		form, err := doc.Form()
		if err != nil {
			return err
		}
		if form.ID.IsZero() {
			return fmt.Errorf("formsource: %s: form has no id", path)
		}

		if previous, exists := origins[form.ID]; exists {
			return fmt.Errorf("formsource: duplicate form id %q (files %s and %s)", form.ID, previous, path)
		}
		origins[form.ID] = path
		store.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// sortForms orders forms by id, numerically when both ids are numeric.
func sortForms(forms []gravity.Form) {
	sort.Slice(forms, func(i, j int) bool {
		a, b := forms[i].ID, forms[j].ID
		if a.Numeric() && b.Numeric() {
			ai, _ := strconv.ParseUint(a.String(), 10, 64)
			bi, _ := strconv.ParseUint(b.String(), 10, 64)
			return ai < bi
		}
		return a < b
	})
}
