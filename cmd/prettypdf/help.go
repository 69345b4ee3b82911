package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: prettypdf [flags] [input.md|dir]...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compose markdown files, in the given order, into one PDF.")
	fmt.Fprintln(w, "Directories contribute their .md/.markdown files sorted by name.")
	fmt.Fprintln(w, "Without inputs, input.paths from the config or input.md is used.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file (default: output.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF rendering timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                  Also write the HTML next to the PDF")
	fmt.Fprintln(w, "      --html-only             Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --dump-metadata         Print each input's metadata as YAML and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>          Stylesheet: default, minimal, or custom")
	fmt.Fprintln(w, "      --template <name>       Layout template name")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/, templates/ and icons/")
	fmt.Fprintln(w, "      --rules <file>          YAML file with extra annotation rules")
	fmt.Fprintln(w, "      --replace-rules         Use --rules instead of the default rules")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --no-tables             Disable GFM tables")
	fmt.Fprintln(w, "      --smart                 Enable smart punctuation")
	fmt.Fprintln(w, "      --no-highlight          Disable syntax highlighting")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for code blocks (default: github)")
	fmt.Fprintln(w, "      --delimiter <c>         Metadata fence character (default: -)")
	fmt.Fprintln(w, "      --toc                   Always include the table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata dates:")
	fmt.Fprintln(w, "  date: auto, auto:FORMAT or auto:PRESET resolves to today")
	fmt.Fprintln(w, "  Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd")
	fmt.Fprintln(w, "  Presets: iso, european, us, long, full, compact")
	fmt.Fprintln(w, "  Use [text] to escape literals: [Week of] MMM D")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --strict-assets         Fail when an existing asset cannot be read")
	fmt.Fprintln(w, "      --mark-failed-assets    Append ?b64_failed! to assets not embedded")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer                Print a footer on every page")
	fmt.Fprintln(w, "      --footer-position <s>   Position: left, center, right")
	fmt.Fprintln(w, "      --footer-text <s>       Text (default: document-id and version)")
	fmt.Fprintln(w, "      --page-number           Show page numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Log every pipeline stage")
	fmt.Fprintln(w, "      --version               Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PRETTYPDF_CONFIG            Config used when --config is not given")
	fmt.Fprintln(w, "  PRETTYPDF_TIMEOUT           Timeout used when --timeout is not given")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN             Chrome binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1            Disable the Chrome sandbox (Docker/CI)")
}
