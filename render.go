package hubmd

import "github.com/alnah/go-hubmd/internal/markdown"

var escapingRenderer = markdown.New(markdown.Options{EscapeText: true})

// Render converts Markdown in the hub dialect to an HTML fragment.
// It never fails: malformed markup degrades to literal text, and an empty
// input gives an empty fragment. Raw HTML outside fenced code passes through.
func Render(md string) string {
	return markdown.Render(md)
}

// RenderEscaped is Render with &, < and > escaped in prose and inline code,
// for content from a less trusted author.
func RenderEscaped(md string) string {
	return escapingRenderer.Render(md)
}

// Excerpt returns the first paragraph of md as plain text, cut at a word
// boundary to at most maxRunes runes. maxRunes <= 0 selects 200.
func Excerpt(md string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = markdown.DefaultExcerptLength
	}
	return markdown.Excerpt(md, maxRunes)
}
