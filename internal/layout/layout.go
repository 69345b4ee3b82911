// Package layout renders the final HTML document from a handlebars template.
//
// Templates receive the combined stylesheet, the rendered table of contents
// and one entry per input document. The b64 helper embeds files next to the
// template (logos, fonts) as data URIs:
//
//	<img src="{{b64 "logo.png"}}">
//	<img src="{{b64 "mark.svg" mime="image/svg+xml"}}">
package layout

import (
	"errors"
	"fmt"
	"html"

	"github.com/aymerick/raymond"

	"github.com/prettypdf/go-prettypdf/internal/inline"
)

// Sentinel errors for template handling.
var (
	ErrParse  = errors.New("invalid layout template")
	ErrRender = errors.New("layout rendering failed")
)

// HelperName is the name templates call to embed a file.
const HelperName = "b64"

// Document is one input document as seen by templates.
type Document struct {
	Index    int
	Anchor   string
	HTML     string
	Metadata map[string]any
}

// Data is the template context.
type Data struct {
	// Title is used for the HTML <title>.
	Title     string
	Styles    string
	TOC       string
	ShowTOC   bool
	Documents []Document
	// Metadata is the first document's metadata, for page-level headers.
	Metadata map[string]any
}

// context converts d to the snake_case map templates address.
func (d Data) context() map[string]any {
	docs := make([]map[string]any, 0, len(d.Documents))
	for _, doc := range d.Documents {
		meta := doc.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		docs = append(docs, map[string]any{
			"index":    doc.Index,
			"number":   doc.Index + 1,
			"anchor":   doc.Anchor,
			"html":     doc.HTML,
			"metadata": meta,
		})
	}

	meta := d.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"title":     d.Title,
		"styles":    d.Styles,
		"toc":       d.TOC,
		"show_toc":  d.ShowTOC,
		"documents": docs,
		"metadata":  meta,
	}
}

// Layout is a parsed template bound to the directory its helper resolves
// files against.
type Layout struct {
	tpl     *raymond.Template
	baseDir string
}

// New parses source and registers the b64 helper resolving against baseDir.
func New(source, baseDir string) (*Layout, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	l := &Layout{tpl: tpl, baseDir: baseDir}
	tpl.RegisterHelper(HelperName, l.embed)
	return l, nil
}

// Render executes the template.
func (l *Layout) Render(data Data) (string, error) {
	out, err := l.tpl.Exec(data.context())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}

// embed implements the b64 helper. Unresolvable paths render as
// "path?b64_failed!"; an existing file that cannot be read aborts rendering.
func (l *Layout) embed(ref string, options *raymond.Options) raymond.SafeString {
	uri, err := inline.DataURI(ref, l.baseDir, options.HashStr("mime"))
	if err != nil {
		// raymond turns a panicking error into the Exec error.
		panic(fmt.Errorf("%s %q: %w", HelperName, ref, err))
	}
	return raymond.SafeString(html.EscapeString(uri))
}
