package main

import (
	"context"
	"errors"
	"os"

	prettypdf "github.com/prettypdf/go-prettypdf"
	"github.com/prettypdf/go-prettypdf/internal/assets"
	"github.com/prettypdf/go-prettypdf/internal/config"
	"github.com/prettypdf/go-prettypdf/internal/fileutil"
	"github.com/prettypdf/go-prettypdf/internal/hints"
	"github.com/prettypdf/go-prettypdf/internal/pipeline"
	"github.com/prettypdf/go-prettypdf/internal/style"
)

// Exit codes for the prettypdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, prettypdf.ErrBrowserConnect) ||
		errors.Is(err, prettypdf.ErrPageCreate) ||
		errors.Is(err, prettypdf.ErrPageLoad) ||
		errors.Is(err, prettypdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, prettypdf.ErrNoSources) ||
		errors.Is(err, prettypdf.ErrInvalidPageSize) ||
		errors.Is(err, prettypdf.ErrInvalidOrientation) ||
		errors.Is(err, prettypdf.ErrInvalidMargin) ||
		errors.Is(err, prettypdf.ErrInvalidFooterPosition) ||
		errors.Is(err, prettypdf.ErrStyleNotFound) ||
		errors.Is(err, prettypdf.ErrTemplateNotFound) ||
		errors.Is(err, prettypdf.ErrInvalidAssetPath) ||
		errors.Is(err, prettypdf.ErrLayout) ||
		errors.Is(err, pipeline.ErrUnknownStyle) ||
		errors.Is(err, style.ErrRuleFile) ||
		errors.Is(err, style.ErrInvalidRule) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidOutputExtension) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, prettypdf.ErrReadSource) ||
		errors.Is(err, prettypdf.ErrAssetInline) ||
		errors.Is(err, fileutil.ErrNoMarkdownFiles) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.Is(err, prettypdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, prettypdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, prettypdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, prettypdf.ErrTemplateNotFound):
		return hints.ForTemplateNotFound()
	case errors.Is(err, style.ErrRuleFile), errors.Is(err, style.ErrInvalidRule):
		return hints.ForRuleFile()
	case errors.Is(err, prettypdf.ErrAssetInline):
		return hints.ForAssetRead()
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForInputExtension()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
