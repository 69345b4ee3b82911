package inline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// srcAttr finds the src attribute inside a raw start tag. Group 2 is the
// value including its quotes.
var srcAttr = regexp.MustCompile(`(?i)(\ssrc\s*=\s*)("[^"]*"|'[^']*'|[^\s"'=<>` + "`" + `]+)`)

// Inliner rewrites src attributes of media elements to data URIs.
type Inliner struct {
	Resolver

	// MarkFailures appends FailureMarker to references that could not be
	// resolved instead of leaving them untouched.
	MarkFailures bool

	// Strict turns a read failure on an existing file into an error.
	// Otherwise the failure is logged and the reference kept.
	Strict bool

	Logger *slog.Logger
}

// NewInliner returns an Inliner resolving against baseDir.
func NewInliner(baseDir string, logger *slog.Logger) *Inliner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Inliner{Resolver: Resolver{BaseDir: baseDir}, Logger: logger}
}

// InlineSources scans text with an HTML tokenizer and rewrites the src
// attribute of img, source, video, audio and image inputs. Every byte
// outside a rewritten attribute value is copied through unchanged.
func (in *Inliner) InlineSources(text string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(text))
	var out strings.Builder
	out.Grow(len(text))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), nil
			}
			return "", fmt.Errorf("scanning HTML: %w", z.Err())
		}

		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.WriteString(raw)
			continue
		}

		tok := z.Token()
		src, ok := mediaSource(tok)
		if !ok {
			out.WriteString(raw)
			continue
		}

		replacement, changed, err := in.rewrite(src)
		if err != nil {
			return "", err
		}
		if !changed {
			out.WriteString(raw)
			continue
		}
		out.WriteString(replaceSrc(raw, replacement))
	}
}

// rewrite returns the new attribute value for src, or changed=false when the
// reference stays as written.
func (in *Inliner) rewrite(src string) (value string, changed bool, err error) {
	res := in.Resolve(src)
	switch res.Kind {
	case KindFound:
		uri, err := ReadDataURI(res.Path, "")
		if err != nil {
			if in.Strict {
				return "", false, fmt.Errorf("inlining %s: %w", src, err)
			}
			in.logger().Warn("asset not inlined", "src", src, "path", res.Path, "error", err)
			return in.failed(src)
		}
		in.logger().Debug("asset inlined", "src", src, "path", res.Path)
		return uri, true, nil

	case KindMissing:
		in.logger().Warn("asset not found", "src", src, "path", res.Path)
		return in.failed(src)

	default:
		return "", false, nil
	}
}

func (in *Inliner) failed(src string) (string, bool, error) {
	if !in.MarkFailures {
		return "", false, nil
	}
	return src + FailureMarker, true, nil
}

func (in *Inliner) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return in.Logger
}

// mediaSource returns the src value of elements that load media.
func mediaSource(tok html.Token) (string, bool) {
	switch tok.Data {
	case "img", "source", "video", "audio":
	case "input":
		if !strings.EqualFold(attr(tok, "type"), "image") {
			return "", false
		}
	default:
		return "", false
	}
	for _, a := range tok.Attr {
		if a.Namespace == "" && a.Key == "src" {
			return a.Val, true
		}
	}
	return "", false
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// replaceSrc swaps the first src value in a raw tag for value, quoted.
func replaceSrc(raw, value string) string {
	loc := srcAttr.FindStringSubmatchIndex(raw)
	if loc == nil {
		return raw
	}
	return raw[:loc[4]] + `"` + html.EscapeString(value) + `"` + raw[loc[5]:]
}
