// Package inline embeds local assets into rendered HTML as base64 data URIs,
// so the document can be printed without access to its source directory.
package inline

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FailureMarker is appended to references that could not be inlined when
// failures must stay visible in the output.
const FailureMarker = "?b64_failed!"

// Sentinel errors for asset inlining.
var (
	ErrAssetRead = errors.New("cannot read asset")
)

// Kind classifies a reference.
type Kind int

const (
	// KindURL is any reference with a scheme (http, data, file, ...) or a
	// bare fragment. It is never rewritten.
	KindURL Kind = iota
	// KindAbsolute is an absolute filesystem path. It is kept as written.
	KindAbsolute
	// KindFound is a relative path that resolved to an existing file.
	KindFound
	// KindMissing is a relative path with no file behind it.
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindAbsolute:
		return "absolute"
	case KindFound:
		return "found"
	case KindMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Kind Kind
	// Path is the file to read when Kind is KindFound, or the path that was
	// tried when Kind is KindMissing.
	Path string
}

// Resolver resolves references relative to the directory of the document
// they appear in. The process working directory is never consulted.
type Resolver struct {
	BaseDir string
}

// Resolve classifies ref and, for relative paths, looks it up under BaseDir.
func (r Resolver) Resolve(ref string) Resolution {
	ref = strings.TrimSpace(ref)
	if ref == "" || isURL(ref) {
		return Resolution{Kind: KindURL}
	}
	if filepath.IsAbs(ref) {
		return Resolution{Kind: KindAbsolute, Path: ref}
	}

	// Renderers percent-encode paths (spaces become %20).
	rel := ref
	if unescaped, err := url.PathUnescape(ref); err == nil {
		rel = unescaped
	}
	path := filepath.Join(r.BaseDir, filepath.FromSlash(rel))

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Resolution{Kind: KindMissing, Path: path}
	}
	return Resolution{Kind: KindFound, Path: path}
}

// isURL reports whether ref carries a scheme or is a fragment or
// protocol-relative reference. Single-letter schemes are treated as Windows
// drive letters, not URLs.
func isURL(ref string) bool {
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return len(u.Scheme) > 1
}
