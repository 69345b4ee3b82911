package prettypdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/prettypdf/go-prettypdf/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page   *PageSettings
	Footer *footerData
}

// footerData is the resolved footer content.
type footerData struct {
	Position       string
	ShowPageNumber bool
	DocumentID     string
	Version        string
	Text           string
}

// paperSizes maps page sizes to portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// footerExtraMargin is added to the bottom margin to make room for the footer.
const footerExtraMargin = 0.25

// defaultFontFamily matches the body font of the bundled styles.
const defaultFontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif`

// rodRenderer prints local HTML files with headless Chrome through go-rod.
// The browser starts on first use; rod downloads Chromium when no binary is
// configured.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
	getenv  func(string) string
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout, getenv: os.Getenv}
}

// launchSettings is the part of the browser launch read from the environment.
type launchSettings struct {
	bin       string
	noSandbox bool
}

// launchSettingsFrom reads ROD_BROWSER_BIN, ROD_NO_SANDBOX and CI. A custom
// binary usually means a container, where the sandbox cannot start.
func launchSettingsFrom(getenv func(string) string) launchSettings {
	ls := launchSettings{bin: getenv("ROD_BROWSER_BIN")}
	ls.noSandbox = ls.bin != "" || getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1"
	return ls
}

func (r *rodRenderer) connect() error {
	if r.browser != nil {
		return nil
	}

	ls := launchSettingsFrom(r.getenv)
	l := launcher.New().NoSandbox(ls.noSandbox)
	if ls.bin != "" {
		l = l.Bin(ls.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close shuts the browser down if it was started.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// loadTimeout is the time left on ctx, or fallback when ctx has no deadline.
func loadTimeout(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// RenderFromFile loads filePath in a new tab and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.connect(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout, err := loadTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	// Assets are inlined, so the load event means the document is complete.
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from page settings and
// an optional footer.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	var footer *footerData
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		footer = opts.Footer
	}

	width, height := paperDimensions(page)
	margin := page.Margin
	if margin == 0 {
		margin = DefaultMargin
	}
	marginBottom := margin
	if footer != nil {
		marginBottom += footerExtraMargin
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	if footer != nil {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(footer, margin)
	}

	return pdfOpts
}

// paperDimensions returns width and height in inches, swapped for landscape.
func paperDimensions(p *PageSettings) (width, height float64) {
	dims, ok := paperSizes[strings.ToLower(p.Size)]
	if !ok {
		dims = paperSizes[PageSizeLetter]
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// buildFooterTemplate generates an HTML template for Chrome's native footer.
// Page numbers use Chrome's pageNumber and totalPages classes.
func buildFooterTemplate(data *footerData, margin float64) string {
	if data == nil {
		return "<span></span>"
	}

	var parts []string
	if data.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	for _, s := range []string{data.DocumentID, data.Version, data.Text} {
		if s != "" {
			parts = append(parts, html.EscapeString(s))
		}
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	textAlign := "right"
	switch strings.ToLower(data.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 %.2fin;">%s</div>`,
		defaultFontFamily, textAlign, margin, strings.Join(parts, " - "))
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
	closer   interface{ Close() error }
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	r := newRodRenderer(timeout)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF writes the HTML to a temporary file and renders it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
