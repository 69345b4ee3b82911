// Package dateutil resolves the "auto" date placeholder found in document
// metadata into a formatted calendar date.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is given without a format.
const DefaultDateFormat = "YYYY-MM-DD"

const autoKeyword = "auto"

// tokens maps format tokens to Go layout components, longest first so the
// scanner matches greedily.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
	"compact":  "YYYYMMDD",
}

// Layout converts a token format such as "DD/MM/YYYY" into a Go time layout.
// Text inside square brackets is copied literally; any other character that
// is not part of a token is kept as is.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var out strings.Builder
	out.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			out.WriteString(literal)
			rest = after
			continue
		}

		n := 1
		written := false
		for _, t := range tokens {
			if strings.HasPrefix(rest, t.token) {
				out.WriteString(t.layout)
				n = len(t.token)
				written = true
				break
			}
		}
		if !written {
			out.WriteByte(rest[0])
		}
		rest = rest[n:]
	}

	return out.String(), nil
}

// IsAuto reports whether value asks for the current date.
func IsAuto(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower == autoKeyword || strings.HasPrefix(lower, autoKeyword+":")
}

// Resolve expands "auto", "auto:FORMAT" and "auto:PRESET" using now.
// Any other value is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !IsAuto(trimmed) {
		return value, nil
	}

	format := DefaultDateFormat
	if len(trimmed) > len(autoKeyword) {
		format = trimmed[len(autoKeyword)+1:]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, autoKeyword+":")
		}
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
