//go:build integration

package prettypdf

import (
	"bytes"
	"context"
	"testing"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestConvert_Integration renders through headless Chrome.
// Rod automatically downloads Chromium on first run if not found.
func TestConvert_Integration(t *testing.T) {
	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	ctx := context.Background()

	t.Run("composed documents produce PDF", func(t *testing.T) {
		res, err := conv.Convert(ctx, Input{
			Sources: []Source{
				{Markdown: "---\ntitle: One\ninclude-toc: true\n---\n# Intro\n\n- [x] done\n"},
				{Markdown: "---\ntitle: Two\n---\n# Body\n\n```go\nfunc main() {}\n```\n"},
			},
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		assertValidPDF(t, res.PDF)
	})

	t.Run("landscape with footer", func(t *testing.T) {
		res, err := conv.Convert(ctx, Input{
			Sources: []Source{{Markdown: "---\ndocument-id: DOC-1\n---\n# Page\n"}},
			Page:    &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1},
			Footer:  &Footer{ShowPageNumber: true},
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		assertValidPDF(t, res.PDF)
	})
}
