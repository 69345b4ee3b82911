// Package prettypdf composes Markdown documents into one styled HTML
// document and prints it to PDF using headless Chrome.
//
// # Quick Start
//
//	conv, err := prettypdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, prettypdf.Input{
//	    Sources: []prettypdf.Source{{Path: "intro.md"}, {Path: "usage.md"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result holds the PDF bytes, the final HTML and the Composition with
// one Document per source. Set Input.HTMLOnly to skip the browser.
//
// # Pipeline
//
// Each source goes through these stages, strictly in input order:
//
//  1. Metadata extraction: a block fenced by three delimiter characters at
//     the head of the file (title, subtitle, date, version, customer,
//     policy, document-id, authors, include-toc, keywords)
//  2. Markdown parsing via Goldmark
//  3. Heading collection for the table of contents, with unique anchors
//     across all documents
//  4. Rendering and style annotation, an ordered table of regular
//     expression rules adding CSS classes and icons
//  5. Asset inlining: bundled icons and images relative to the source
//     become base64 data URIs
//
// The merged table of contents is rendered once as a nested list, then a
// handlebars layout receives the stylesheet, the contents and the
// documents. Metadata and asset problems are logged and never abort a run;
// unreadable inputs, layout errors and PDF failures do.
//
// # Configuration
//
//	conv, err := prettypdf.NewConverter(
//	    prettypdf.WithTimeout(2 * time.Minute),
//	    prettypdf.WithStyle("minimal"),
//	    prettypdf.WithAssetPath("/path/to/assets"),
//	    prettypdf.WithDelimiter('+'),
//	    prettypdf.WithLogger(slog.Default()),
//	)
//
// Asset directory structure (every file optional, bundled assets fill in):
//
//	assets/
//	├── styles/<name>.css
//	├── templates/<name>.hbs
//	└── icons/{external-link,checkbox-checked,checkbox-unchecked}.svg
//
// Templates can embed files with the b64 helper: {{b64 "logo.png"}}.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package prettypdf
