package toc

import "strings"

// ListClass is the class of the outermost list element.
const ListClass = "toc-list"

// RenderNested renders entries as one well-formed nested list.
//
// Depth may jump by more than one level in either direction. Missing
// intermediate levels get an empty wrapping item, and closing never goes
// below the outer list.
func RenderNested(entries []Entry) string {
	var b strings.Builder
	b.WriteString(`<ul class="` + ListClass + `">`)

	var level uint
	itemOpen := false

	for _, e := range entries {
		for level > e.Depth {
			if itemOpen {
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
			level--
			// The item that held the closed list is still open.
			itemOpen = true
		}
		if level == e.Depth && itemOpen {
			b.WriteString("</li>")
			itemOpen = false
		}
		for level < e.Depth {
			if !itemOpen {
				b.WriteString("<li>")
			}
			b.WriteString("<ul>")
			level++
			itemOpen = false
		}
		b.WriteString("<li>")
		b.WriteString(e.Label)
		itemOpen = true
	}

	for level > 0 {
		if itemOpen {
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		level--
		itemOpen = true
	}
	if itemOpen {
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
