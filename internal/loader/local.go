package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("loader: form file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open form file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, path)
}

func readForms(forms fs.FS, name string) ([]byte, error) {
	if forms == nil {
		return nil, errors.New("loader: no forms directory configured")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("loader: invalid form path %q", name)
	}
	f, err := forms.Open(name)
	if err != nil {
		return nil, fmt.Errorf("loader: open form %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, name)
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("loader: %s exceeds %d bytes", name, maxDocumentBytes)
	}
	return data, nil
}
