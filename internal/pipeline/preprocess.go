package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// bom is the UTF-8 byte order mark some editors write at the start of a file.
const bom = "\uFEFF"

// NormalizeLineEndings converts \r\n and \r to \n and drops a leading byte
// order mark, so the metadata scanner sees plain newlines.
func NormalizeLineEndings(content string) string {
	content = strings.TrimPrefix(content, bom)
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SanitizeCSS escapes sequences that could break out of a <style> block.
func SanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}
