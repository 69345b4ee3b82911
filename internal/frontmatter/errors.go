// Package frontmatter extracts the delimited metadata block at the head of a
// Markdown document.
//
// The scanner is a small state machine over runes rather than a regular
// expression: a delimiter at the start of a line is only a closing marker if
// it completes a run of three, so it must be tracked incrementally.
package frontmatter

import "errors"

// Sentinel errors for metadata extraction.
var (
	ErrStartNotFound   = errors.New("start of metadata block not found")
	ErrMalformedMarker = errors.New("malformed metadata marker")
	ErrExpectedNewline = errors.New("expected newline after metadata marker")
	ErrUnexpectedEOF   = errors.New("unexpected end of input in metadata block")
	ErrDecode          = errors.New("invalid metadata block")
)
