package assets

import (
	"fmt"
	"strings"
)

// Default asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "default"
)

// kind describes one asset category: where it lives and how it is named.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".hbs", notFound: ErrTemplateNotFound}
	iconKind     = kind{dir: "icons", ext: ".svg", notFound: ErrIconNotFound}
)

// AssetLoader defines the contract for loading styles, layout templates and
// icons. Implementations may load from embedded assets, filesystem, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a handlebars layout by name (without .hbs extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadIcon loads an SVG icon by name (without .svg extension).
	// Returns ErrIconNotFound if the icon doesn't exist.
	LoadIcon(name string) ([]byte, error)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
