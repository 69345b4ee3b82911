package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prettypdf/go-prettypdf/internal/yamlutil"
)

type docHeader struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Draft   bool     `yaml:"draft"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding used for metadata blocks
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("title: Report\nauthors:\n- Ada\n- Grace\ndraft: true"),
			dest: &docHeader{},
			check: func(t *testing.T, v any) {
				h := v.(*docHeader)
				if h.Title != "Report" {
					t.Errorf("Title = %q, want %q", h.Title, "Report")
				}
				if len(h.Authors) != 2 || h.Authors[1] != "Grace" {
					t.Errorf("Authors = %v, want [Ada Grace]", h.Authors)
				}
				if !h.Draft {
					t.Error("Draft = false, want true")
				}
			},
		},
		{
			name: "unknown keys are ignored",
			data: []byte("title: Report\nreviewer: Linus"),
			dest: &docHeader{},
			check: func(t *testing.T, v any) {
				if got := v.(*docHeader).Title; got != "Report" {
					t.Errorf("Title = %q, want %q", got, "Report")
				}
			},
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &docHeader{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("title: [unclosed"),
			dest:    &docHeader{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Config and rule files reject unknown keys
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var h docHeader
		if err := yamlutil.UnmarshalStrict([]byte("title: ok"), &h); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if h.Title != "ok" {
			t.Errorf("Title = %q, want %q", h.Title, "ok")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var h docHeader
		err := yamlutil.UnmarshalStrict([]byte("title: ok\ntitel: typo"), &h)
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want yamlutil prefix", err)
		}
	})

	t.Run("input too large", func(t *testing.T) {
		t.Parallel()

		big := []byte("title: " + strings.Repeat("x", yamlutil.MaxInputSize))
		var h docHeader
		err := yamlutil.UnmarshalStrict(big, &h)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Block-style output decodes back to the same value
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := docHeader{Title: "Plan", Authors: []string{"Ada"}, Draft: true}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out docHeader
	if err := yamlutil.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Title != in.Title || len(out.Authors) != 1 || out.Authors[0] != "Ada" || !out.Draft {
		t.Errorf("decoded = %+v, want %+v", out, in)
	}
}
