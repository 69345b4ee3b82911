package prettypdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prettypdf/go-prettypdf/internal/frontmatter"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns portrait US Letter with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Footer configures the PDF footer printed by Chrome on every page.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	// Text is free-form. When empty, the composer fills it from the first
	// document's document-id and version metadata.
	Text string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Metadata is the descriptive block at the head of a document.
type Metadata = frontmatter.Metadata

// Source is one input document.
type Source struct {
	// Path names the file. When Markdown is empty the file is read.
	Path string
	// Markdown is the document text. Takes precedence over reading Path.
	Markdown string
	// BaseDir is the directory relative asset references resolve against.
	// Defaults to the directory of Path. An in-memory source with neither
	// set keeps its relative references as written.
	BaseDir string
}

func (s Source) baseDir() string {
	if s.BaseDir != "" {
		return s.BaseDir
	}
	if s.Path != "" {
		return filepath.Dir(s.Path)
	}
	return ""
}

func (s Source) name(index int) string {
	if s.Path != "" {
		return s.Path
	}
	return fmt.Sprintf("document %d", index+1)
}

// Document is one processed input.
type Document struct {
	Index int
	// Metadata is nil when the document has no usable metadata block.
	Metadata *Metadata
	// Anchor is the id of the document title, empty when untitled.
	Anchor string
	// HTML is the annotated and inlined body fragment.
	HTML string
}

// TOCEntry is one line of the merged table of contents.
type TOCEntry struct {
	Depth uint
	Label string
}

// Composition is the result of composing one or more documents.
type Composition struct {
	Documents []Document
	TOC       []TOCEntry
	// TOCHTML is TOC rendered as a nested list.
	TOCHTML string
	ShowTOC bool
	// HTML is the complete document produced by the layout template.
	HTML string
}

// Input contains conversion parameters.
type Input struct {
	Sources  []Source      // Documents in output order (required)
	Page     *PageSettings // Page settings (optional, nil = defaults)
	Footer   *Footer       // Footer config (optional)
	ForceTOC bool          // Show the contents even if no document asks for it
	HTMLOnly bool          // Skip PDF rendering
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML        []byte
	PDF         []byte // nil when Input.HTMLOnly is set
	Composition *Composition
}
