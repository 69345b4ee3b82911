//go:build bench

package toc

import "testing"

// ---------------------------------------------------------------------------
// BenchmarkRenderNested
// ---------------------------------------------------------------------------

func BenchmarkRenderNested(b *testing.B) {
	var in []Entry
	for i := 0; i < 500; i++ {
		in = append(in, Entry{Depth: uint(i % 4), Label: `<a href="#s">Section</a>`})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RenderNested(in)
	}
}
