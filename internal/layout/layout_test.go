package layout

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestNew - Template parsing
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "plain text", source: "hello"},
		{name: "blocks", source: "{{#each documents}}{{{html}}}{{/each}}"},
		{name: "unclosed block", source: "{{#if show_toc}}toc", wantErr: ErrParse},
		{name: "mismatched block", source: "{{#if a}}x{{/each}}", wantErr: ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.source, t.TempDir())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - Context shape
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	const source = `<title>{{title}}</title><style>{{{styles}}}</style>` +
		`{{#if show_toc}}<nav>{{{toc}}}</nav>{{/if}}` +
		`{{#each documents}}<section id="doc-{{number}}">` +
		`{{#if metadata.title}}<h1 id="{{anchor}}">{{metadata.title}}</h1>{{/if}}` +
		`{{#each metadata.authors}}<span>{{this}}</span>{{/each}}` +
		`{{{html}}}</section>{{/each}}` +
		`<footer>{{metadata.document_id}}</footer>`

	l, err := New(source, t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data := Data{
		Title:   "A & B",
		Styles:  "p{margin:0}",
		TOC:     `<ul class="toc-list"><li>x</li></ul>`,
		ShowTOC: true,
		Documents: []Document{
			{Index: 0, Anchor: "a", HTML: "<p>one</p>", Metadata: map[string]any{"title": "A", "authors": []string{"Ada", "Grace"}}},
			{Index: 1, HTML: "<p>two</p>"},
		},
		Metadata: map[string]any{"document_id": "DOC-1"},
	}

	got, err := l.Render(data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `<title>A &amp; B</title><style>p{margin:0}</style>` +
		`<nav><ul class="toc-list"><li>x</li></ul></nav>` +
		`<section id="doc-1"><h1 id="a">A</h1><span>Ada</span><span>Grace</span><p>one</p></section>` +
		`<section id="doc-2"><p>two</p></section>` +
		`<footer>DOC-1</footer>`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_HidesTOC(t *testing.T) {
	t.Parallel()

	l, err := New(`{{#if show_toc}}{{{toc}}}{{/if}}body`, t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := l.Render(Data{TOC: "<ul></ul>"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "body" {
		t.Errorf("Render() = %q, want %q", got, "body")
	}
}

// ---------------------------------------------------------------------------
// TestHelper - b64 embedding
// ---------------------------------------------------------------------------

func TestHelper(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "logo.svg", svg)
	encoded := base64.StdEncoding.EncodeToString([]byte(svg))

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "sniffed MIME",
			source: `<img src="{{b64 "logo.svg"}}">`,
			want:   `<img src="data:image/svg+xml;base64,` + encoded + `">`,
		},
		{
			name:   "explicit MIME",
			source: `<img src="{{b64 "logo.svg" mime="text/plain"}}">`,
			want:   `<img src="data:text/plain;base64,` + encoded + `">`,
		},
		{
			name:   "missing file",
			source: `<img src="{{b64 "nope.png"}}">`,
			want:   `<img src="nope.png?b64_failed!">`,
		},
		{
			name:   "remote URL",
			source: `<img src="{{b64 "https://example.com/x.png"}}">`,
			want:   `<img src="https://example.com/x.png">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.source, dir)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, err := l.Render(Data{})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHelper_ReadFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "locked.png", "x")
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatal(err)
	}

	l, err := New(`{{b64 "locked.png"}}`, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = l.Render(Data{})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("Render() error = %v, want ErrRender", err)
	}
	if !strings.Contains(err.Error(), "locked.png") {
		t.Errorf("error %q does not name the file", err)
	}
}
