package frontmatter

import (
	"fmt"
	"strings"

	"github.com/prettypdf/go-prettypdf/internal/yamlutil"
)

// Metadata holds the well-known fields of a metadata block.
// Every field is optional; nil means the key was absent.
type Metadata struct {
	Title      *string  `yaml:"title,omitempty"`
	Subtitle   *string  `yaml:"subtitle,omitempty"`
	Date       *string  `yaml:"date,omitempty"`
	Version    *string  `yaml:"version,omitempty"`
	Customer   *string  `yaml:"customer,omitempty"`
	Policy     *string  `yaml:"policy,omitempty"`
	DocumentID *string  `yaml:"document-id,omitempty"`
	Authors    []string `yaml:"authors,omitempty"`
	IncludeTOC *bool    `yaml:"include-toc,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty"`
}

// Decode parses a metadata payload. A blank payload yields empty metadata.
// Failures wrap ErrDecode.
func Decode(payload string) (*Metadata, error) {
	if strings.TrimSpace(payload) == "" {
		return &Metadata{}, nil
	}

	var raw rawMetadata
	if err := yamlutil.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Metadata{
		Title:      raw.Title.ptr(),
		Subtitle:   raw.Subtitle.ptr(),
		Date:       raw.Date.ptr(),
		Version:    raw.Version.ptr(),
		Customer:   raw.Customer.ptr(),
		Policy:     raw.Policy.ptr(),
		DocumentID: raw.DocumentID.ptr(),
		Authors:    raw.Authors,
		IncludeTOC: raw.IncludeTOC,
		Keywords:   raw.Keywords,
	}, nil
}

// rawMetadata mirrors Metadata with scalar fields kept as written.
type rawMetadata struct {
	Title      *Text    `yaml:"title"`
	Subtitle   *Text    `yaml:"subtitle"`
	Date       *Text    `yaml:"date"`
	Version    *Text    `yaml:"version"`
	Customer   *Text    `yaml:"customer"`
	Policy     *Text    `yaml:"policy"`
	DocumentID *Text    `yaml:"document-id"`
	Authors    []string `yaml:"authors"`
	IncludeTOC *bool    `yaml:"include-toc"`
	Keywords   []string `yaml:"keywords"`
}

// Text is a scalar decoded from its source text. Plain scalars are not
// converted through numbers, so "1.10" stays "1.10" and "0042" stays "0042".
type Text string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (t *Text) UnmarshalYAML(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" {
		*t = ""
		return nil
	}

	switch s[0] {
	case '"', '\'', '|', '>':
		// Quoted and block scalars carry escapes and folding.
		var decoded string
		if err := yamlutil.Unmarshal([]byte(s), &decoded); err != nil {
			return err
		}
		*t = Text(decoded)
	default:
		if i := strings.Index(s, " #"); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		*t = Text(s)
	}
	return nil
}

func (t *Text) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// Marshal serializes the metadata back to YAML, without delimiters.
func (m *Metadata) Marshal() (string, error) {
	if m == nil {
		return "", nil
	}
	data, err := yamlutil.Marshal(m)
	if err != nil {
		return "", err
	}
	// An empty struct marshals to "{}", which is not a block body.
	if strings.TrimSpace(string(data)) == "{}" {
		return "", nil
	}
	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// HasTitle reports whether a non-empty title was declared.
func (m *Metadata) HasTitle() bool {
	return m != nil && m.Title != nil && *m.Title != ""
}

// WantsTOC reports whether include-toc was set to true.
func (m *Metadata) WantsTOC() bool {
	return m != nil && m.IncludeTOC != nil && *m.IncludeTOC
}

// WithDate returns a copy of m with Date replaced. m itself is not modified.
func (m *Metadata) WithDate(date string) *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	c.Date = &date
	c.Authors = append([]string(nil), m.Authors...)
	c.Keywords = append([]string(nil), m.Keywords...)
	return &c
}

// Value dereferences an optional field, returning "" when absent.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Fields flattens the metadata into a template context. Absent fields are
// omitted so template conditionals treat them as false. Keys use
// underscores: document-id becomes document_id.
func (m *Metadata) Fields() map[string]any {
	fields := make(map[string]any)
	if m == nil {
		return fields
	}
	for key, p := range map[string]*string{
		"title":       m.Title,
		"subtitle":    m.Subtitle,
		"date":        m.Date,
		"version":     m.Version,
		"customer":    m.Customer,
		"policy":      m.Policy,
		"document_id": m.DocumentID,
	} {
		if p != nil && *p != "" {
			fields[key] = *p
		}
	}
	if len(m.Authors) > 0 {
		fields["authors"] = append([]string(nil), m.Authors...)
	}
	if len(m.Keywords) > 0 {
		fields["keywords"] = append([]string(nil), m.Keywords...)
	}
	if m.IncludeTOC != nil {
		fields["include_toc"] = *m.IncludeTOC
	}
	return fields
}
