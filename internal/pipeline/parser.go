package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for the parse and render stages.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownStyle   = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Config selects the optional Markdown features.
type Config struct {
	Tables           bool
	SmartPunctuation bool
	Highlight        bool
	HighlightStyle   string
}

// DefaultConfig enables tables and highlighting, leaves punctuation as typed.
func DefaultConfig() Config {
	return Config{
		Tables:         true,
		Highlight:      true,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// Parser parses Markdown into a goldmark tree and renders trees to HTML.
// It is safe for concurrent use.
type Parser struct {
	md  goldmark.Markdown
	cfg Config
}

// NewParser builds a goldmark instance for cfg.
//
// Strikethrough is not enabled: "~" and "~~" are left in the text for the
// style rules to turn into underline and strike markup.
func NewParser(cfg Config) *Parser {
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}

	exts := []goldmark.Extender{
		extension.Footnote,       // [^1] footnotes
		extension.TaskList,       // - [x] items
		extension.Linkify,        // bare URLs become links
		extension.DefinitionList, // term / : definition
	}
	if cfg.Tables {
		exts = append(exts, extension.Table)
	}
	if cfg.SmartPunctuation {
		exts = append(exts, extension.Typographer)
	}
	if cfg.Highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.HighlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, stylesheet from HighlightCSS
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe() is not used: raw HTML in sources is dropped.
		),
	)
	return &Parser{md: md, cfg: cfg}
}

// Config returns the configuration the parser was built with.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse builds the content tree for source. Goldmark does not fail on any
// input; malformed Markdown degrades to paragraphs.
func (p *Parser) Parse(source []byte) ast.Node {
	return p.md.Parser().Parse(text.NewReader(source))
}

// Render serializes a tree produced by Parse for the same source.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (p *Parser) Render(ctx context.Context, source []byte, node ast.Node) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Renderer().Render(&buf, source, node); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Convert parses and renders source in one step.
func (p *Parser) Convert(ctx context.Context, source []byte) (string, error) {
	return p.Render(ctx, source, p.Parse(source))
}

// HighlightCSS returns the chroma stylesheet matching the classes emitted
// when highlighting is enabled.
func HighlightCSS(name string) (string, error) {
	if name == "" {
		name = DefaultHighlightStyle
	}
	style, ok := styles.Registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return writeCSS(style)
}

func writeCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
