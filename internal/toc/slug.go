package toc

import (
	"strconv"
	"strings"
	"unicode"
)

// fallbackSlug is used when a heading has no alphanumeric content.
const fallbackSlug = "section"

// Slugger derives anchor slugs and remembers which ones were handed out.
// Share one Slugger across every document of a run so anchors stay unique
// in the merged output. Not safe for concurrent use.
type Slugger struct {
	next map[string]int
	used map[string]bool
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{next: make(map[string]int), used: make(map[string]bool)}
}

// Slug returns a unique URL-safe slug for text.
// Repeats get a numeric suffix: "intro", "intro-1", "intro-2".
func (s *Slugger) Slug(text string) string {
	if s.next == nil {
		s.next = make(map[string]int)
		s.used = make(map[string]bool)
	}

	base := Slugify(text)
	for n := s.next[base]; ; n++ {
		slug := base
		if n > 0 {
			slug = base + "-" + strconv.Itoa(n)
		}
		if !s.used[slug] {
			s.next[base] = n + 1
			s.used[slug] = true
			return slug
		}
	}
}

// Slugify lowercases text and collapses every run of non-alphanumeric runes
// into a single "-". It does not deduplicate.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSep := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}
