// Package pipeline implements the post rendering pipeline around the
// Markdown engine.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, BOM)
//   - Markdown to HTML fragment conversion, either with the hub's own
//     engine (internal/markdown) or with Goldmark for CommonMark input
//   - Syntax highlighting of fenced code blocks via Chroma
//   - Page wrapping: post metadata rendered through an html/template and
//     CSS injected into <head>
//   - Relative path rewriting for PDF export
//
// PDF rendering itself lives in the root hubmd package (go-rod), which
// keeps this package free of browser concerns.
package pipeline
