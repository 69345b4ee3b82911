package prettypdf

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	path    string
	content string
	opts    *pdfOptions
	result  []byte
	err     error
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.path = filePath
	m.opts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.content = string(data)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockCloser struct {
	closed bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRodConverter - Temp file handling around the renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("writes HTML to temp file and removes it", func(t *testing.T) {
		t.Parallel()

		renderer := &mockRenderer{result: []byte("%PDF-1.4")}
		conv := &rodConverter{renderer: renderer}

		opts := &pdfOptions{Page: DefaultPageSettings()}
		data, err := conv.ToPDF(context.Background(), "<p>hello</p>", opts)
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		if string(data) != "%PDF-1.4" {
			t.Errorf("data = %q", data)
		}
		if renderer.content != "<p>hello</p>" {
			t.Errorf("renderer saw %q", renderer.content)
		}
		if !strings.Contains(renderer.path, "prettypdf-") || !strings.HasSuffix(renderer.path, ".html") {
			t.Errorf("unexpected temp path %q", renderer.path)
		}
		if renderer.opts != opts {
			t.Error("options not passed through")
		}
		if _, err := os.Stat(renderer.path); !os.IsNotExist(err) {
			t.Errorf("temp file should be removed, stat err = %v", err)
		}
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		renderer := &mockRenderer{err: ErrPageLoad}
		conv := &rodConverter{renderer: renderer}

		_, err := conv.ToPDF(context.Background(), "<p>x</p>", nil)
		if !errors.Is(err, ErrPageLoad) {
			t.Fatalf("error = %v, want ErrPageLoad", err)
		}
	})
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	t.Run("closes the closer", func(t *testing.T) {
		t.Parallel()

		closer := &mockCloser{}
		conv := &rodConverter{renderer: &mockRenderer{}, closer: closer}
		if err := conv.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if !closer.closed {
			t.Error("expected closer to be called")
		}
	})

	t.Run("nil closer", func(t *testing.T) {
		t.Parallel()

		conv := &rodConverter{renderer: &mockRenderer{}}
		if err := conv.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})

	t.Run("unstarted renderer", func(t *testing.T) {
		t.Parallel()

		conv := newRodConverter(defaultTimeout)
		if err := conv.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLaunchSettings - Browser launch environment
// ---------------------------------------------------------------------------

func TestLaunchSettingsFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		env           map[string]string
		wantBin       string
		wantNoSandbox bool
	}{
		{"nothing set", nil, "", false},
		{"custom binary disables sandbox", map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, "/usr/bin/chromium", true},
		{"CI", map[string]string{"CI": "true"}, "", true},
		{"CI other value", map[string]string{"CI": "1"}, "", false},
		{"explicit no sandbox", map[string]string{"ROD_NO_SANDBOX": "1"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := launchSettingsFrom(func(k string) string { return tt.env[k] })
			if got.bin != tt.wantBin || got.noSandbox != tt.wantNoSandbox {
				t.Errorf("launchSettingsFrom() = %+v, want bin=%q noSandbox=%v", got, tt.wantBin, tt.wantNoSandbox)
			}
		})
	}
}

func TestLoadTimeout(t *testing.T) {
	t.Parallel()

	t.Run("no deadline uses fallback", func(t *testing.T) {
		t.Parallel()

		got, err := loadTimeout(context.Background(), 5*time.Second)
		if err != nil || got != 5*time.Second {
			t.Errorf("loadTimeout() = %v, %v", got, err)
		}
	})

	t.Run("deadline wins", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		got, err := loadTimeout(ctx, time.Second)
		if err != nil || got <= time.Second || got > time.Minute {
			t.Errorf("loadTimeout() = %v, %v", got, err)
		}
	})

	t.Run("expired deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()
		if _, err := loadTimeout(ctx, time.Second); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want DeadlineExceeded", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Page geometry and footer margin
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         *pdfOptions
		wantWidth    float64
		wantHeight   float64
		wantMargin   float64
		wantBottom   float64
		wantFooterOn bool
	}{
		{
			name:       "nil opts uses letter portrait",
			opts:       nil,
			wantWidth:  8.5,
			wantHeight: 11,
			wantMargin: DefaultMargin,
			wantBottom: DefaultMargin,
		},
		{
			name:       "a4 landscape swaps dimensions",
			opts:       &pdfOptions{Page: &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}},
			wantWidth:  11.69,
			wantHeight: 8.27,
			wantMargin: 1,
			wantBottom: 1,
		},
		{
			name:       "legal uppercase size",
			opts:       &pdfOptions{Page: &PageSettings{Size: "LEGAL", Orientation: "portrait", Margin: 0.75}},
			wantWidth:  8.5,
			wantHeight: 14,
			wantMargin: 0.75,
			wantBottom: 0.75,
		},
		{
			name:         "footer adds bottom margin",
			opts:         &pdfOptions{Footer: &footerData{Text: "f"}},
			wantWidth:    8.5,
			wantHeight:   11,
			wantMargin:   DefaultMargin,
			wantBottom:   DefaultMargin + footerExtraMargin,
			wantFooterOn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.wantWidth || *got.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			if *got.MarginTop != tt.wantMargin || *got.MarginLeft != tt.wantMargin || *got.MarginRight != tt.wantMargin {
				t.Errorf("margins = %v/%v/%v, want %v", *got.MarginTop, *got.MarginLeft, *got.MarginRight, tt.wantMargin)
			}
			if *got.MarginBottom != tt.wantBottom {
				t.Errorf("bottom margin = %v, want %v", *got.MarginBottom, tt.wantBottom)
			}
			if got.DisplayHeaderFooter != tt.wantFooterOn {
				t.Errorf("DisplayHeaderFooter = %v, want %v", got.DisplayHeaderFooter, tt.wantFooterOn)
			}
			if !got.PrintBackground {
				t.Error("expected PrintBackground")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildFooterTemplate - Chrome footer HTML
// ---------------------------------------------------------------------------

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     *footerData
		wantPart string
		wantNot  string
	}{
		{
			name:     "nil data returns empty span",
			data:     nil,
			wantPart: "<span></span>",
		},
		{
			name:     "no content returns empty span",
			data:     &footerData{Position: "left"},
			wantPart: "<span></span>",
		},
		{
			name:     "page number only",
			data:     &footerData{ShowPageNumber: true},
			wantPart: `class="pageNumber"`,
		},
		{
			name:     "document id and version joined",
			data:     &footerData{DocumentID: "DOC-1", Version: "2.0"},
			wantPart: "DOC-1 - 2.0",
		},
		{
			name:     "text only",
			data:     &footerData{Text: "Footer Text"},
			wantPart: "Footer Text",
		},
		{
			name:     "left position",
			data:     &footerData{Text: "Test", Position: "left"},
			wantPart: "text-align: left",
		},
		{
			name:     "center position",
			data:     &footerData{Text: "Test", Position: "CENTER"},
			wantPart: "text-align: center",
		},
		{
			name:     "empty position defaults to right",
			data:     &footerData{Text: "Test"},
			wantPart: "text-align: right",
		},
		{
			name:     "padding follows margin",
			data:     &footerData{Text: "Test"},
			wantPart: "padding: 0 0.50in",
		},
		{
			name:    "HTML escapes special chars",
			data:    &footerData{Text: "<script>alert('xss')</script>"},
			wantNot: "<script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := buildFooterTemplate(tt.data, DefaultMargin)

			if tt.wantPart != "" && !strings.Contains(result, tt.wantPart) {
				t.Errorf("expected %q in result, got: %s", tt.wantPart, result)
			}
			if tt.wantNot != "" && strings.Contains(result, tt.wantNot) {
				t.Errorf("expected %q NOT in result, got: %s", tt.wantNot, result)
			}
		})
	}
}
