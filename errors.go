package prettypdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSources      = errors.New("no input documents")
	ErrReadSource     = errors.New("cannot read input document")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrLayout         = errors.New("layout rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrAssetInline      = errors.New("asset inlining failed")
)
