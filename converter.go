package prettypdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prettypdf/go-prettypdf/internal/assets"
	"github.com/prettypdf/go-prettypdf/internal/dateutil"
	"github.com/prettypdf/go-prettypdf/internal/frontmatter"
	"github.com/prettypdf/go-prettypdf/internal/inline"
	"github.com/prettypdf/go-prettypdf/internal/layout"
	"github.com/prettypdf/go-prettypdf/internal/pipeline"
	"github.com/prettypdf/go-prettypdf/internal/style"
	"github.com/prettypdf/go-prettypdf/internal/toc"
)

// iconMIME is the content type of every bundled icon.
const iconMIME = "image/svg+xml"

// Converter composes Markdown documents into one HTML document and renders
// it to PDF. Create with NewConverter, call Convert or Compose, and Close
// when done. Documents within one call are processed sequentially.
type Converter struct {
	cfg    converterConfig
	logger *slog.Logger
	now    func() time.Time

	parser    *pipeline.Parser
	extractor frontmatter.Extractor
	rules     []style.Rule
	icons     map[string]inline.Asset
	styles    string

	template string
	layout   *layout.Layout // bound to the asset path; nil when none is set

	pdfConverter pdfConverter
}

// NewConverter loads the style, layout and icons and builds the parser.
// Returns an error if an asset cannot be found or the layout does not parse.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			styleName:    assets.DefaultStyleName,
			templateName: assets.DefaultTemplateName,
			parser:       pipeline.DefaultConfig(),
			delimiter:    frontmatter.DefaultDelimiter,
		},
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	if err := c.loadStyles(resolver); err != nil {
		return nil, err
	}
	if err := c.loadLayout(resolver); err != nil {
		return nil, err
	}
	if err := c.loadIcons(resolver); err != nil {
		return nil, err
	}

	c.parser = pipeline.NewParser(c.cfg.parser)
	c.extractor = frontmatter.Extractor{Delimiter: c.cfg.delimiter}
	c.rules = style.Table(c.cfg.rules, c.cfg.replaceRules, style.DefaultIcons()...)

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

func (c *Converter) loadStyles(resolver *assets.AssetResolver) error {
	css, err := resolver.LoadStyle(c.cfg.styleName)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, c.cfg.styleName)
		}
		return fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
	}

	if c.cfg.parser.Highlight {
		highlight, err := pipeline.HighlightCSS(c.cfg.parser.HighlightStyle)
		if err != nil {
			return err
		}
		css += "\n" + highlight
	}

	c.styles = pipeline.SanitizeCSS(css)
	return nil
}

func (c *Converter) loadLayout(resolver *assets.AssetResolver) error {
	source, err := resolver.LoadTemplate(c.cfg.templateName)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return fmt.Errorf("%w: %q", ErrTemplateNotFound, c.cfg.templateName)
		}
		return fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}

	// Parsed once; template errors surface from NewConverter.
	lay, err := layout.New(source, resolver.CustomPath())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLayout, err)
	}
	c.template = source
	if resolver.HasCustomLoader() {
		c.layout = lay
	}
	return nil
}

func (c *Converter) loadIcons(resolver *assets.AssetResolver) error {
	c.icons = make(map[string]inline.Asset)
	for _, name := range style.DefaultIcons() {
		data, err := resolver.LoadIcon(name)
		if err != nil {
			return fmt.Errorf("loading icon %q: %w", name, err)
		}
		c.icons[name] = inline.Asset{MIME: iconMIME, Data: data}
	}
	return nil
}

// Compose processes sources in order and renders the layout. The table of
// contents is shown when any document sets include-toc.
func (c *Converter) Compose(ctx context.Context, sources []Source) (*Composition, error) {
	return c.compose(ctx, sources, false)
}

func (c *Converter) compose(ctx context.Context, sources []Source, forceTOC bool) (*Composition, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	comp := &Composition{ShowTOC: forceTOC}
	slugger := toc.NewSlugger()
	var entries []toc.Entry

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, docEntries, err := c.processDocument(ctx, i, src, slugger)
		if err != nil {
			return nil, err
		}
		comp.Documents = append(comp.Documents, doc)
		entries = append(entries, docEntries...)
		if doc.Metadata.WantsTOC() {
			comp.ShowTOC = true
		}
	}

	comp.TOC = make([]TOCEntry, len(entries))
	for i, e := range entries {
		comp.TOC[i] = TOCEntry{Depth: e.Depth, Label: e.Label}
	}
	comp.TOCHTML = toc.RenderNested(entries)

	html, err := c.renderLayout(comp, sources[0].baseDir())
	if err != nil {
		return nil, err
	}
	comp.HTML = html
	return comp, nil
}

// processDocument runs one source through extraction, parsing, annotation
// and inlining. Title and heading slugs come from the run-wide slugger.
func (c *Converter) processDocument(ctx context.Context, index int, src Source, slugger *toc.Slugger) (Document, []toc.Entry, error) {
	name := src.name(index)
	log := c.logger.With("document", name)

	text, err := readSource(src)
	if err != nil {
		return Document{}, nil, err
	}
	text = pipeline.NormalizeLineEndings(text)

	meta, body := c.extractMetadata(text, log)
	meta = c.resolveDate(meta, log)

	source := []byte(body)
	root := c.parser.Parse(source)

	doc := Document{Index: index, Metadata: meta}
	var entries []toc.Entry
	if meta.HasTitle() {
		title := toc.TitleEntry(*meta.Title, slugger)
		doc.Anchor = title.Slug
		entries = append(entries, title)
	}
	headings := toc.Walk(root, source, slugger)
	toc.ApplyAnchors(headings)
	entries = append(entries, headings...)
	log.Debug("headings collected", "count", len(headings))

	html, err := c.parser.Render(ctx, source, root)
	if err != nil {
		return Document{}, nil, fmt.Errorf("%w: %s: %w", ErrHTMLConversion, name, err)
	}

	html = style.Apply(html, c.rules)
	html = inline.InlineTags(html, c.icons)

	if baseDir := src.baseDir(); baseDir != "" {
		in := inline.NewInliner(baseDir, log)
		in.Strict = c.cfg.strictAssets
		in.MarkFailures = c.cfg.markFailed
		html, err = in.InlineSources(html)
		if err != nil {
			return Document{}, nil, fmt.Errorf("%w: %s: %w", ErrAssetInline, name, err)
		}
	} else {
		log.Debug("no base directory, relative sources left as written")
	}

	doc.HTML = html
	return doc, entries, nil
}

func readSource(src Source) (string, error) {
	if src.Markdown != "" || src.Path == "" {
		return src.Markdown, nil
	}
	data, err := os.ReadFile(src.Path) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	return string(data), nil
}

// extractMetadata splits text into metadata and body. Metadata problems are
// never fatal: the document is processed without a block.
func (c *Converter) extractMetadata(text string, log *slog.Logger) (*Metadata, string) {
	meta, offset, err := c.extractor.Extract(text)
	switch {
	case err == nil:
		return meta, text[offset:]
	case errors.Is(err, frontmatter.ErrDecode):
		log.Warn("metadata block ignored", "error", err)
		return nil, text[offset:]
	case errors.Is(err, frontmatter.ErrStartNotFound):
		log.Debug("no metadata block")
		return nil, text
	default:
		log.Warn("metadata block ignored", "error", err)
		return nil, text
	}
}

// resolveDate expands "date: auto[:FORMAT]". A bad format keeps the
// original value.
func (c *Converter) resolveDate(meta *Metadata, log *slog.Logger) *Metadata {
	if meta == nil || meta.Date == nil || !dateutil.IsAuto(*meta.Date) {
		return meta
	}
	date, err := dateutil.Resolve(*meta.Date, c.now())
	if err != nil {
		log.Warn("date not resolved", "date", *meta.Date, "error", err)
		return meta
	}
	return meta.WithDate(date)
}

// renderLayout executes the layout. Without an asset path, b64 helper
// references resolve against the first document's directory.
func (c *Converter) renderLayout(comp *Composition, firstDir string) (string, error) {
	lay := c.layout
	if lay == nil {
		var err error
		lay, err = layout.New(c.template, firstDir)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrLayout, err)
		}
	}

	docs := make([]layout.Document, len(comp.Documents))
	for i, d := range comp.Documents {
		docs[i] = layout.Document{
			Index:    d.Index,
			Anchor:   d.Anchor,
			HTML:     d.HTML,
			Metadata: d.Metadata.Fields(),
		}
	}

	first := comp.Documents[0].Metadata
	data := layout.Data{
		Title:     frontmatter.Value(titleOf(first)),
		Styles:    c.styles,
		TOC:       comp.TOCHTML,
		ShowTOC:   comp.ShowTOC,
		Documents: docs,
		Metadata:  first.Fields(),
	}

	out, err := lay.Render(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return out, nil
}

func titleOf(m *Metadata) *string {
	if m == nil {
		return nil
	}
	return m.Title
}

// Convert composes the sources and, unless HTMLOnly is set, renders the
// result to PDF. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	comp, err := c.compose(ctx, input.Sources, input.ForceTOC)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:        []byte(comp.HTML),
		Composition: comp,
	}
	if input.HTMLOnly {
		return res, nil
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	opts := &pdfOptions{
		Page:   page,
		Footer: footerFor(input.Footer, comp.Documents[0].Metadata),
	}

	c.logger.Debug("rendering PDF", "size", page.Size, "orientation", page.Orientation)
	pdf, err := c.pdfConverter.ToPDF(ctx, comp.HTML, opts)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// validateInput is the trust boundary for library users who build Input by
// hand. CLI input has already passed config validation.
func validateInput(input Input) error {
	if len(input.Sources) == 0 {
		return ErrNoSources
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Footer.Validate()
}

// footerFor builds the footer content. Without explicit text it shows the
// first document's id and version.
func footerFor(f *Footer, meta *Metadata) *footerData {
	if f == nil {
		return nil
	}
	data := &footerData{
		Position:       f.Position,
		ShowPageNumber: f.ShowPageNumber,
		Text:           f.Text,
	}
	if data.Text == "" && meta != nil {
		data.DocumentID = frontmatter.Value(meta.DocumentID)
		data.Version = frontmatter.Value(meta.Version)
	}
	return data
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
