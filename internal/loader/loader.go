// Package loader reads Gravity Forms form documents from disk, a forms
// directory or a URL such as a REST API form endpoint.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// maxDocumentBytes bounds a single form document. Large Gravity Forms exports
// stay well under it.
const maxDocumentBytes = 8 << 20

// ErrRemoteDisabled is returned for URL sources when the loader has no HTTP
// client.
var ErrRemoteDisabled = errors.New("loader: URL sources are disabled")

// Options configures a Loader.
type Options struct {
	// FileSystem backs gravity.SourceFS documents.
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader reads form documents.
type Loader struct {
	forms   fs.FS
	client  *http.Client
	timeout time.Duration
}

// New constructs a Loader. URL sources are enabled when a client is given or
// AllowHTTP is set.
func New(options Options) *Loader {
	l := &Loader{forms: options.FileSystem, timeout: options.RequestTimeout}
	switch {
	case options.HTTPClient != nil:
		l.client = options.HTTPClient
	case options.AllowHTTP:
		l.client = &http.Client{}
	}
	return l
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src gravity.Source) (gravity.Document, error) {
	if src.IsZero() {
		return gravity.Document{}, errors.New("loader: form source is required")
	}
	if err := ctx.Err(); err != nil {
		return gravity.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case gravity.SourceFile:
		data, err = readFile(src.Location)
	case gravity.SourceFS:
		data, err = readForms(l.forms, src.Location)
	case gravity.SourceURL:
		data, err = l.fetch(ctx, src.Location)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return gravity.Document{}, err
	}
	return gravity.NewDocument(src, data)
}

// LoadForm loads and decodes the form behind src.
func (l *Loader) LoadForm(ctx context.Context, src gravity.Source) (gravity.Form, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return gravity.Form{}, err
	}
	return doc.Form()
}
