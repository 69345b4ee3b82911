// Package pipeline wraps the Markdown parser.
//
// It owns the goldmark configuration (extensions, renderer options, syntax
// highlighting) and the text clean-up that happens before parsing:
//   - line ending normalization ahead of metadata extraction
//   - Markdown to content tree and content tree to HTML via goldmark
//   - chroma stylesheet generation for highlighted code
//
// Annotation, asset inlining and layout happen in other packages. PDF
// generation is handled separately by the root prettypdf package using
// headless Chrome (go-rod).
package pipeline
