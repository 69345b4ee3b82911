package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling the run itself.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// assetFlags holds style, layout and rule selection.
type assetFlags struct {
	style        string
	template     string
	assetPath    string
	rules        string
	replaceRules bool
}

// parserFlags holds Markdown feature toggles.
type parserFlags struct {
	noTables       bool
	smart          bool
	noHighlight    bool
	highlightStyle string
	delimiter      string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer flags. Any of them turns the footer on.
type footerFlags struct {
	enabled    bool
	position   string
	text       string
	pageNumber bool
}

// inlineFlags holds asset embedding policy.
type inlineFlags struct {
	strict     bool
	markFailed bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html         bool // also write the HTML next to the PDF
	htmlOnly     bool // write HTML only, skip PDF
	dumpMetadata bool // print metadata blocks, write nothing
}

// cliFlags holds every flag of the command.
type cliFlags struct {
	common     commonFlags
	output     string
	timeout    string
	toc        bool
	assets     assetFlags
	parser     parserFlags
	page       pageFlags
	footer     footerFlags
	inline     inlineFlags
	outputMode outputFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every pipeline stage")
	fs.BoolVar(&f.version, "version", false, "show version information")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.template, "template", "", "layout template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/, templates/ and icons/")
	fs.StringVar(&f.rules, "rules", "", "YAML file with extra annotation rules")
	fs.BoolVar(&f.replaceRules, "replace-rules", false, "use --rules instead of the default rules")
}

func addParserFlags(fs *flag.FlagSet, f *parserFlags) {
	fs.BoolVar(&f.noTables, "no-tables", false, "disable GFM tables")
	fs.BoolVar(&f.smart, "smart", false, "enable smart punctuation")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.StringVar(&f.delimiter, "delimiter", "", "metadata fence character (default \"-\")")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.BoolVar(&f.enabled, "footer", false, "print a footer on every page")
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "footer text (default: document-id and version)")
	fs.BoolVar(&f.pageNumber, "page-number", false, "show page numbers in the footer")
}

func addInlineFlags(fs *flag.FlagSet, f *inlineFlags) {
	fs.BoolVar(&f.strict, "strict-assets", false, "fail when an existing asset cannot be read")
	fs.BoolVar(&f.markFailed, "mark-failed-assets", false, "append ?b64_failed! to assets that were not embedded")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "also write the HTML next to the PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.dumpMetadata, "dump-metadata", false, "print each input's metadata as YAML and exit")
}

// newFlagSet registers every flag on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("prettypdf", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default \"output.pdf\")")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF rendering timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.toc, "toc", false, "always include the table of contents")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addParserFlags(fs, &f.parser)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addInlineFlags(fs, &f.inline)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printUsage(stderr) }
	return fs
}

// parseFlags parses args (without the program name) and returns the
// positional inputs.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
