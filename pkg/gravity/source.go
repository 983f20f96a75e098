package gravity

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// SourceKind tells a loader how to reach a form document.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceFS   SourceKind = "fs"
	SourceURL  SourceKind = "url"
)

// Source locates a form document: a file on disk, an entry of a forms
// directory, or a URL such as a REST API form endpoint.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource points at a form document on disk.
func FileSource(p string) Source {
	return Source{Kind: SourceFile, Location: filepath.Clean(p)}
}

// FSSource names a form document inside a forms directory.
func FSSource(name string) Source {
	return Source{Kind: SourceFS, Location: name}
}

// URLSource accepts absolute http and https URLs.
func URLSource(raw string) (Source, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Source{}, fmt.Errorf("gravity: invalid form URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Source{}, fmt.Errorf("gravity: form URL %q must be absolute http or https", raw)
	}
	return Source{Kind: SourceURL, Location: u.String()}, nil
}

// ParseSource reads a command-line source argument. http and https URLs
// become URL sources; anything else is a file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("gravity: empty form source")
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return URLSource(raw)
	}
	return FileSource(raw), nil
}

// IsZero reports whether the source names nothing.
func (s Source) IsZero() bool {
	return s.Kind == "" && s.Location == ""
}

// Stem is the last path element of the location without its extension.
// "forms/12.yaml" and "https://example.com/wp-json/gf/v2/forms/12" both give
// "12".
func (s Source) Stem() string {
	var base string
	switch s.Kind {
	case SourceFile:
		base = filepath.Base(s.Location)
	case SourceURL:
		u, err := url.Parse(s.Location)
		if err != nil {
			return ""
		}
		base = path.Base(u.Path)
	default:
		base = path.Base(s.Location)
	}
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func (s Source) String() string {
	if s.IsZero() {
		return ""
	}
	return string(s.Kind) + ":" + s.Location
}
