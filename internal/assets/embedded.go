package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.hbs icons/*.svg
var bundled embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) load(k kind, name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := bundled.ReadFile(path.Join(k.dir, name+k.ext))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", k.notFound, name)
	}
	return content, nil
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	content, err := e.load(styleKind, name)
	return string(content), err
}

// LoadTemplate loads a handlebars layout from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	content, err := e.load(templateKind, name)
	return string(content), err
}

// LoadIcon loads an SVG icon from embedded assets by name.
func (e *EmbeddedLoader) LoadIcon(name string) ([]byte, error) {
	return e.load(iconKind, name)
}

// Styles lists the names of the bundled styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	return names(styleKind)
}

func names(k kind) []string {
	entries, err := fs.ReadDir(bundled, k.dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if n, ok := strings.CutSuffix(entry.Name(), k.ext); ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
