package main

// Notes:
// - exitCodeFor: we test sentinel errors from the library, config, style and
//   CLI, plus wrapped errors to verify errors.Is() chain works correctly.
// - hintFor: we check which errors carry a hint, not the hint wording.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	prettypdf "github.com/prettypdf/go-prettypdf"
	"github.com/prettypdf/go-prettypdf/internal/config"
	"github.com/prettypdf/go-prettypdf/internal/fileutil"
	"github.com/prettypdf/go-prettypdf/internal/pipeline"
	"github.com/prettypdf/go-prettypdf/internal/style"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", prettypdf.ErrBrowserConnect, ExitBrowser},
		{"page create", prettypdf.ErrPageCreate, ExitBrowser},
		{"page load", prettypdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", prettypdf.ErrPDFGeneration, ExitBrowser},
		{"deadline", context.DeadlineExceeded, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", prettypdf.ErrBrowserConnect), ExitBrowser},

		// Usage errors (exit 2)
		{"config not found", &config.NotFoundError{Name: "x"}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"no sources", prettypdf.ErrNoSources, ExitUsage},
		{"page size", prettypdf.ErrInvalidPageSize, ExitUsage},
		{"orientation", prettypdf.ErrInvalidOrientation, ExitUsage},
		{"margin", prettypdf.ErrInvalidMargin, ExitUsage},
		{"footer position", prettypdf.ErrInvalidFooterPosition, ExitUsage},
		{"style not found", prettypdf.ErrStyleNotFound, ExitUsage},
		{"template not found", prettypdf.ErrTemplateNotFound, ExitUsage},
		{"asset path", prettypdf.ErrInvalidAssetPath, ExitUsage},
		{"layout", prettypdf.ErrLayout, ExitUsage},
		{"highlight style", pipeline.ErrUnknownStyle, ExitUsage},
		{"rule file", style.ErrRuleFile, ExitUsage},
		{"invalid rule", style.ErrInvalidRule, ExitUsage},
		{"input extension", ErrInvalidExtension, ExitUsage},
		{"output extension", ErrInvalidOutputExtension, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// I/O errors (exit 3)
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read source", fmt.Errorf("%w: %w", prettypdf.ErrReadSource, os.ErrNotExist), ExitIO},
		{"asset inline", prettypdf.ErrAssetInline, ExitIO},
		{"empty directory", fileutil.ErrNoMarkdownFiles, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},

		// General errors (exit 1)
		{"unknown error", errors.New("something else"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
		contains string
	}{
		{"config not found", &config.NotFoundError{Name: "x", Tried: []string{"x.yaml"}}, true, "--config"},
		{"page load", prettypdf.ErrPageLoad, true, "--timeout"},
		{"style not found", prettypdf.ErrStyleNotFound, true, "default"},
		{"template not found", prettypdf.ErrTemplateNotFound, true, "templates"},
		{"rule file", style.ErrRuleFile, true, "rules:"},
		{"asset inline", prettypdf.ErrAssetInline, true, "--strict-assets"},
		{"input extension", ErrInvalidExtension, true, ".md"},
		{"write output", ErrWriteOutput, true, "writable"},
		{"unknown error", errors.New("x"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if !tt.wantHint {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, "hint:") || !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want hint containing %q", got, tt.contains)
			}
		})
	}
}
