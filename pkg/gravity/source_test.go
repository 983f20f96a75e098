package gravity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		in   string
		want Source
	}{
		{"forms/contact.json", Source{Kind: SourceFile, Location: "forms/contact.json"}},
		{" ./forms//12.yaml ", Source{Kind: SourceFile, Location: "forms/12.yaml"}},
		{"https://example.com/wp-json/gf/v2/forms/3", Source{Kind: SourceURL, Location: "https://example.com/wp-json/gf/v2/forms/3"}},
		{"HTTP://example.com/f.json", Source{Kind: SourceURL, Location: "http://example.com/f.json"}},
	}
	for _, tc := range cases {
		got, err := ParseSource(tc.in)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.in, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseSource(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}

	for _, bad := range []string{"", "   ", "https://"} {
		if _, err := ParseSource(bad); err == nil {
			t.Fatalf("ParseSource(%q): expected error", bad)
		}
	}
	if _, err := URLSource("ftp://example.com/f.json"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestSource_Stem(t *testing.T) {
	url, err := URLSource("https://example.com/wp-json/gf/v2/forms/12?_fields=id")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	cases := map[string]Source{
		"12":      url,
		"contact": FileSource("testdata/contact.json"),
		"7":       FSSource("nested/7.yml"),
		"":        {},
	}
	for want, src := range cases {
		if got := src.Stem(); got != want {
			t.Fatalf("Stem(%v): want %q, got %q", src, want, got)
		}
	}
}

func TestDocument_Form(t *testing.T) {
	if _, err := NewDocument(Source{}, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for zero source")
	}
	if _, err := NewDocument(FSSource("a.json"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	data := []byte(`{"title":"Untitled id","fields":[]}`)
	doc, err := NewDocument(FSSource("forms/31.json"), data)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	data[0] = 'x'

	form, err := doc.Form()
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.ID != "31" || form.Title != "Untitled id" {
		t.Fatalf("unexpected form: %#v", form)
	}

	doc, err = NewDocument(FSSource("forms/31.json"), []byte(`{"id": 4, "fields": []}`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if form, err := doc.Form(); err != nil || form.ID != "4" {
		t.Fatalf("declared id must win over the stem, got %#v (%v)", form, err)
	}
}
