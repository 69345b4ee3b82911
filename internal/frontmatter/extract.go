package frontmatter

import (
	"fmt"
	"strings"
)

// DefaultDelimiter is the marker character used when none is configured.
const DefaultDelimiter = '-'

// markerLength is the number of delimiter characters forming a marker line.
const markerLength = 3

// Extractor finds the metadata block at the head of a document.
// The zero value uses DefaultDelimiter.
type Extractor struct {
	Delimiter rune
}

// state is one of searchingStart, readingMarker, readingBody or skippingNewline.
type state interface {
	isState()
}

// searchingStart skips blank characters until the opening marker begins.
type searchingStart struct{}

// readingMarker counts delimiter characters of an opening or closing marker.
// For a closing candidate, body holds the block read so far so the run can be
// handed back if it turns out to be ordinary content.
type readingMarker struct {
	count   int
	closing bool
	body    *strings.Builder
}

// readingBody accumulates the block payload line by line.
type readingBody struct {
	buf         *strings.Builder
	atLineStart bool
}

// skippingNewline expects the newline that terminates a marker line.
type skippingNewline struct {
	closing bool
	body    *strings.Builder
}

func (searchingStart) isState()  {}
func (readingMarker) isState()   {}
func (readingBody) isState()     {}
func (skippingNewline) isState() {}

func (e Extractor) delimiter() rune {
	if e.Delimiter == 0 {
		return DefaultDelimiter
	}
	return e.Delimiter
}

// Split scans input for a metadata block and returns its raw payload together
// with the byte offset at which document content starts.
func (e Extractor) Split(input string) (payload string, offset int, err error) {
	delim := e.delimiter()
	var st state = searchingStart{}

	for idx, ch := range input {
		switch s := st.(type) {
		case searchingStart:
			switch {
			case ch == delim:
				st = readingMarker{count: 1}
			case isBlank(ch):
			default:
				return "", 0, fmt.Errorf("%w: found %q at offset %d", ErrStartNotFound, ch, idx)
			}

		case readingMarker:
			if ch == delim {
				s.count++
				if s.count == markerLength {
					st = skippingNewline{closing: s.closing, body: s.body}
				} else {
					st = s
				}
				continue
			}
			if !s.closing {
				return "", 0, fmt.Errorf("%w: %d delimiter(s) followed by %q at offset %d", ErrMalformedMarker, s.count, ch, idx)
			}
			// Short run at line start: ordinary block content.
			s.body.WriteString(strings.Repeat(string(delim), s.count))
			s.body.WriteRune(ch)
			st = readingBody{buf: s.body, atLineStart: ch == '\n'}

		case skippingNewline:
			switch {
			case ch == '\n':
				if s.closing {
					return s.body.String(), idx + 1, nil
				}
				st = readingBody{buf: &strings.Builder{}, atLineStart: true}
			case ch == delim:
				return "", 0, fmt.Errorf("%w: more than %d delimiters at offset %d", ErrMalformedMarker, markerLength, idx)
			default:
				return "", 0, fmt.Errorf("%w: got %q at offset %d", ErrExpectedNewline, ch, idx)
			}

		case readingBody:
			if ch == delim && s.atLineStart {
				st = readingMarker{count: 1, closing: true, body: s.buf}
				continue
			}
			s.buf.WriteRune(ch)
			s.atLineStart = ch == '\n'
			st = s
		}
	}

	// A closing marker on the last line without a trailing newline still closes the block.
	if s, ok := st.(skippingNewline); ok && s.closing {
		return s.body.String(), len(input), nil
	}
	if _, ok := st.(searchingStart); ok {
		return "", 0, fmt.Errorf("%w: input is blank", ErrStartNotFound)
	}
	return "", 0, ErrUnexpectedEOF
}

// Extract splits input and decodes the payload. On a decode failure the
// returned offset is still valid and the error wraps ErrDecode, so callers
// can carry on without metadata.
func (e Extractor) Extract(input string) (*Metadata, int, error) {
	payload, offset, err := e.Split(input)
	if err != nil {
		return nil, 0, err
	}
	m, err := Decode(payload)
	if err != nil {
		return nil, offset, err
	}
	return m, offset, nil
}

// Extract uses the default delimiter.
func Extract(input string) (*Metadata, int, error) {
	return Extractor{}.Extract(input)
}

func isBlank(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
