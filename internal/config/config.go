// Package config loads and validates prettypdf YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/prettypdf/go-prettypdf/internal/fileutil"
	"github.com/prettypdf/go-prettypdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name searched under the user config directory.
const AppDir = "prettypdf"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 100
	MaxTextLength        = 500
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds all configuration for a prettypdf run.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Style    StyleConfig    `yaml:"style"`
	Template TemplateConfig `yaml:"template"`
	Assets   AssetsConfig   `yaml:"assets"`
	Parser   ParserConfig   `yaml:"parser"`
	Page     PageConfig     `yaml:"page"`
	Footer   FooterConfig   `yaml:"footer"`
	TOC      TOCConfig      `yaml:"toc"`
	Inline   InlineConfig   `yaml:"inline"`
	Timeout  Duration       `yaml:"timeout"`
}

// InputConfig lists the sources used when none are given on the command line.
type InputConfig struct {
	Paths []string `yaml:"paths"`
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	Path     string `yaml:"path"`     // default "output.pdf"
	KeepHTML bool   `yaml:"keepHTML"` // also write the intermediate HTML
}

// StyleConfig selects the stylesheet and the annotation rule table.
type StyleConfig struct {
	Name         string `yaml:"name"`         // bundled or custom style name
	RulesFile    string `yaml:"rulesFile"`    // YAML file with extra rules
	ReplaceRules bool   `yaml:"replaceRules"` // extra rules replace the defaults
}

// TemplateConfig selects the handlebars layout.
type TemplateConfig struct {
	Name string `yaml:"name"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// ParserConfig tunes markdown parsing.
type ParserConfig struct {
	Tables           bool   `yaml:"tables"`
	SmartPunctuation bool   `yaml:"smartPunctuation"`
	Highlight        bool   `yaml:"highlight"`
	HighlightStyle   string `yaml:"highlightStyle"`
	Delimiter        string `yaml:"delimiter"` // metadata fence character
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right"
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Force bool `yaml:"force"` // show the contents page even if no document asks for it
}

// InlineConfig defines how embedded asset failures are handled.
type InlineConfig struct {
	Strict       bool `yaml:"strict"`
	MarkFailures bool `yaml:"markFailures"`
}

// Duration is a time.Duration decoded from strings such as "90s" or "2m".
type Duration time.Duration

// UnmarshalYAML decodes a Go duration string. An empty value means unset.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:   OutputConfig{Path: "output.pdf"},
		Style:    StyleConfig{Name: "default"},
		Template: TemplateConfig{Name: "default"},
		Parser: ParserConfig{
			Tables:         true,
			Highlight:      true,
			HighlightStyle: "github",
			Delimiter:      "-",
		},
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		Footer: FooterConfig{Position: "right"},
	}
}

// Validate checks field lengths and enumerated values. Called by LoadConfig,
// but available for callers who build a Config by hand.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"output.path", c.Output.Path, MaxPathLength},
		{"style.name", c.Style.Name, MaxNameLength},
		{"style.rulesFile", c.Style.RulesFile, MaxPathLength},
		{"template.name", c.Template.Name, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"parser.highlightStyle", c.Parser.HighlightStyle, MaxNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	for i, p := range c.Input.Paths {
		if err := validateFieldLength(fmt.Sprintf("input.paths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Parser.Delimiter != "" {
		if _, err := DelimiterRune(c.Parser.Delimiter); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin %.2f (must be between %.2f and %.2f)", ErrInvalidValue, c.Page.Margin, MinMargin, MaxMargin)
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidValue)
	}
	return nil
}

// DelimiterRune validates a metadata delimiter and returns it as a rune.
// The delimiter must be a single printable, non-space, non-alphanumeric rune.
func DelimiterRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: parser.delimiter %q must be a single character", ErrInvalidValue, s)
	}
	if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) || !unicode.IsPrint(r) {
		return 0, fmt.Errorf("%w: parser.delimiter %q must be a punctuation character", ErrInvalidValue, s)
	}
	return r, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read directly; a bare name is
// searched in the standard locations. Keys absent from the file keep their
// DefaultConfig value. There is no silent fallback when the file is missing.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NotFoundError lists the paths searched for a named config.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// resolveConfigPath searches for name.yaml then name.yml in the current
// directory, then in the user config directory under AppDir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppDir))
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.FileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}

	return "", &NotFoundError{Name: name, Tried: tried}
}
