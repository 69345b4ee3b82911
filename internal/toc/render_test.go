package toc

import (
	"strings"
	"testing"
)

func entries(pairs ...any) []Entry {
	var out []Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Entry{Depth: uint(pairs[i].(int)), Label: pairs[i+1].(string)})
	}
	return out
}

// ---------------------------------------------------------------------------
// TestRenderNested - Exact output for representative shapes
// ---------------------------------------------------------------------------

func TestRenderNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    `<ul class="toc-list"></ul>`,
		},
		{
			name:    "single heading without title",
			entries: entries(1, "A"),
			want:    `<ul class="toc-list"><li><ul><li>A</li></ul></li></ul>`,
		},
		{
			name:    "titles with sections",
			entries: entries(0, "T", 1, "A", 1, "B", 2, "C", 0, "U"),
			want:    `<ul class="toc-list"><li>T<ul><li>A</li><li>B<ul><li>C</li></ul></li></ul></li><li>U</li></ul>`,
		},
		{
			name:    "jump from 0 to 3",
			entries: entries(0, "T", 3, "X"),
			want:    `<ul class="toc-list"><li>T<ul><li><ul><li><ul><li>X</li></ul></li></ul></li></ul></li></ul>`,
		},
		{
			name:    "starts deep then drops to 0",
			entries: entries(2, "A", 0, "B", 1, "C"),
			want:    `<ul class="toc-list"><li><ul><li><ul><li>A</li></ul></li></ul></li><li>B<ul><li>C</li></ul></li></ul>`,
		},
		{
			name:    "back up one level",
			entries: entries(1, "A", 2, "B", 1, "C"),
			want:    `<ul class="toc-list"><li><ul><li>A<ul><li>B</li></ul></li><li>C</li></ul></li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RenderNested(tt.entries); got != tt.want {
				t.Errorf("RenderNested() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderNested_Balanced - Open and close tags match for any depth sequence
// ---------------------------------------------------------------------------

func TestRenderNested_Balanced(t *testing.T) {
	t.Parallel()

	sequences := [][]uint{
		{0, 3},
		{3, 0},
		{0, 1, 2, 3, 4, 5, 6, 0},
		{6, 1, 6, 1},
		{2, 2, 2},
		{0, 0, 0},
		{1, 3, 0, 2, 0, 6, 4},
		{5},
	}

	for _, seq := range sequences {
		var in []Entry
		for _, d := range seq {
			in = append(in, Entry{Depth: d, Label: "x"})
		}
		out := RenderNested(in)

		if open, closed := strings.Count(out, "<ul"), strings.Count(out, "</ul>"); open != closed {
			t.Errorf("depths %v: %d <ul vs %d </ul>\n%s", seq, open, closed, out)
		}
		if open, closed := strings.Count(out, "<li>"), strings.Count(out, "</li>"); open != closed {
			t.Errorf("depths %v: %d <li> vs %d </li>\n%s", seq, open, closed, out)
		}
		if got := strings.Count(out, "<li>x"); got != len(seq) {
			t.Errorf("depths %v: %d labelled items, want %d", seq, got, len(seq))
		}
		assertNesting(t, seq, out)
	}
}

// assertNesting scans out as a tag stack and fails on any mismatched close
// or anything left open.
func assertNesting(t *testing.T, seq []uint, out string) {
	t.Helper()

	var stack []string
	for rest := out; rest != ""; {
		i := strings.IndexByte(rest, '<')
		if i < 0 {
			break
		}
		rest = rest[i:]
		j := strings.IndexByte(rest, '>')
		tag := rest[1:j]
		rest = rest[j+1:]

		name := strings.Fields(strings.TrimPrefix(tag, "/"))[0]
		if strings.HasPrefix(tag, "/") {
			if len(stack) == 0 || stack[len(stack)-1] != name {
				t.Fatalf("depths %v: unexpected </%s> with stack %v\n%s", seq, name, stack, out)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		stack = append(stack, name)
	}
	if len(stack) != 0 {
		t.Errorf("depths %v: unclosed %v\n%s", seq, stack, out)
	}
}
