package prettypdf

import (
	"log/slog"
	"time"

	"github.com/prettypdf/go-prettypdf/internal/pipeline"
	"github.com/prettypdf/go-prettypdf/internal/style"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the values options set before NewConverter resolves
// them into loaded assets.
type converterConfig struct {
	timeout      time.Duration
	styleName    string
	templateName string
	assetPath    string
	rules        []style.Rule
	replaceRules bool
	parser       pipeline.Config
	delimiter    rune
	strictAssets bool
	markFailed   bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("prettypdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the stylesheet by name. Custom styles are looked up
// under the asset path first.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithTemplate selects the handlebars layout by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithAssetPath sets a directory holding styles/, templates/ and icons/
// that take precedence over the bundled assets. The layout's b64 helper
// also resolves against it.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithRules adds annotation rules after the defaults, or in place of them
// when replace is true.
func WithRules(rules []style.Rule, replace bool) Option {
	return func(c *Converter) {
		c.cfg.rules = rules
		c.cfg.replaceRules = replace
	}
}

// WithParserConfig selects the optional Markdown features.
func WithParserConfig(cfg pipeline.Config) Option {
	return func(c *Converter) {
		c.cfg.parser = cfg
	}
}

// WithDelimiter sets the metadata fence character (default '-').
func WithDelimiter(r rune) Option {
	return func(c *Converter) {
		c.cfg.delimiter = r
	}
}

// WithLogger sets the logger for recoverable failures and stage tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used to resolve "date: auto".
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// WithStrictAssets makes a failure to read an existing asset abort the run.
func WithStrictAssets(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strictAssets = strict
	}
}

// WithMarkFailedAssets appends "?b64_failed!" to references that could not
// be inlined, so they stand out in the output.
func WithMarkFailedAssets(mark bool) Option {
	return func(c *Converter) {
		c.cfg.markFailed = mark
	}
}

// withPDFConverter injects a PDF backend (tests).
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}
