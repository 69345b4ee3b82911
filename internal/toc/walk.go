// Package toc collects headings from a parsed Markdown tree and renders them
// as a nested table of contents.
package toc

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Entry is one table-of-contents line.
type Entry struct {
	// Depth is the heading level, or 0 for a synthetic document title.
	Depth uint
	// Label is the anchor link written into the list item.
	Label string
	// Text is the plain heading text, unescaped.
	Text string
	// Slug is the anchor id the label links to.
	Slug string
	// Heading is the node the entry came from; nil for title entries.
	Heading *ast.Heading
}

// Walk returns one entry per heading under root, in document order.
// The tree is not modified; see ApplyAnchors.
func Walk(root ast.Node, source []byte, slugger *Slugger) []Entry {
	var entries []Entry
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		text := PlainText(h, source)
		slug := slugger.Slug(text)
		entries = append(entries, Entry{
			Depth:   uint(h.Level),
			Label:   link(slug, text),
			Text:    text,
			Slug:    slug,
			Heading: h,
		})
		// Heading children are inline formatting only.
		return ast.WalkSkipChildren, nil
	})
	return entries
}

// TitleEntry builds the depth-0 entry for a document title.
func TitleEntry(title string, slugger *Slugger) Entry {
	slug := slugger.Slug(title)
	return Entry{
		Depth: 0,
		Label: link(slug, title),
		Text:  title,
		Slug:  slug,
	}
}

// ApplyAnchors sets the id attribute of every entry's heading node to its
// slug, so the rendered heading is the target of the TOC link.
func ApplyAnchors(entries []Entry) {
	for _, e := range entries {
		if e.Heading != nil {
			e.Heading.SetAttributeString("id", []byte(e.Slug))
		}
	}
}

// PlainText concatenates the text-bearing descendants of n, ignoring markup.
// Line breaks become single spaces.
func PlainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c == n {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			// Typographer output is stored as entities.
			if v.IsCode() {
				b.WriteString(html.UnescapeString(string(v.Value)))
			} else {
				b.Write(v.Value)
			}
		case *ast.AutoLink:
			b.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func link(slug, text string) string {
	return `<a href="#` + slug + `">` + html.EscapeString(text) + `</a>`
}
