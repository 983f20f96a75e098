package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

const doc = `{"id": 5, "title": "Feedback", "fields": [{"id": 1, "label": "Q", "type": "text"}]}`

func mustURL(t *testing.T, raw string) gravity.Source {
	t.Helper()
	src, err := gravity.URLSource(raw)
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	return src
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	form, err := New(Options{}).LoadForm(context.Background(), gravity.FileSource(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if form.ID != "5" || form.Title != "Feedback" {
		t.Fatalf("unexpected form: %#v", form)
	}

	if _, err := New(Options{}).Load(context.Background(), gravity.FileSource(filepath.Join(t.TempDir(), "missing.json"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoader_FormsDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/feedback.json": {Data: []byte(doc)},
		"forms/12.yaml":       {Data: []byte("title: Survey\nfields: []\n")},
	}
	l := New(Options{FileSystem: fsys})

	got, err := l.Load(context.Background(), gravity.FSSource("forms/feedback.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Source.Location != "forms/feedback.json" || string(got.Data) != doc {
		t.Fatalf("unexpected document %#v", got.Source)
	}

	form, err := l.LoadForm(context.Background(), gravity.FSSource("forms/12.yaml"))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if form.ID != "12" || form.Title != "Survey" {
		t.Fatalf("expected stem id 12, got %#v", form)
	}

	if _, err := l.Load(context.Background(), gravity.FSSource("../escape.json")); err == nil {
		t.Fatalf("expected error for invalid path")
	}
	if _, err := New(Options{}).Load(context.Background(), gravity.FSSource("x.json")); err == nil {
		t.Fatalf("expected error without forms directory")
	}
}

func TestLoader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/gf/v2/forms/5":
			_, _ = io.WriteString(w, doc)
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	src := mustURL(t, server.URL+"/wp-json/gf/v2/forms/5")
	if _, err := New(Options{}).Load(context.Background(), src); !errors.Is(err, ErrRemoteDisabled) {
		t.Fatalf("expected ErrRemoteDisabled, got %v", err)
	}

	l := New(Options{HTTPClient: server.Client()})
	form, err := l.LoadForm(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(form.Fields) != 1 {
		t.Fatalf("unexpected form: %#v", form)
	}

	if _, err := l.Load(context.Background(), mustURL(t, server.URL+"/wp-json/gf/v2/forms/9")); !errors.Is(err, formsource.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := l.Load(context.Background(), mustURL(t, server.URL+"/broken")); err == nil || errors.Is(err, formsource.ErrFormNotFound) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestReadLimited(t *testing.T) {
	big := strings.NewReader(strings.Repeat("x", maxDocumentBytes+1))
	if _, err := readLimited(big, "big.json"); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestLoader_ZeroSourceAndCancelledContext(t *testing.T) {
	if _, err := New(Options{}).Load(context.Background(), gravity.Source{}); err == nil {
		t.Fatalf("expected error for zero source")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Options{}).Load(ctx, gravity.FileSource("form.json")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
