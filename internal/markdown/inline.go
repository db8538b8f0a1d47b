package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Inline placeholders protect HTML produced by an earlier pass from the
// delimiters of later passes (an '_' inside an href, a '*' inside <code>).
const (
	inlineStart = "\uE000" // U+E000: Private Use Area
	inlineEnd   = "\uE001" // U+E001: Private Use Area
)

// Precompiled inline patterns. Each one excludes its own delimiter from
// the captured text, so matching is non-greedy by construction.
var (
	inlineCodePattern  = regexp.MustCompile("`([^`]+)`")
	linkPattern        = regexp.MustCompile(`!?\[([^\]]+)\]\(([^)]+)\)`)
	imagePattern       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	boldStarPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderPattern   = regexp.MustCompile(`__([^_]+)__`)
	italicStarPattern  = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnderPattern = regexp.MustCompile(`_([^_]+)_`)
	strikePattern      = regexp.MustCompile(`~~([^~]+)~~`)
)

// FormatInline applies the inline passes to the text of a single block.
// Inline code content is inserted verbatim, without HTML escaping.
func FormatInline(text string) string {
	return formatInline(stripReserved(text), false)
}

// formatInline runs the passes in their fixed order. Later passes assume
// earlier ones have consumed their delimiters, so the order must not change:
// code, links, images, bold, italic, strikethrough, line breaks.
func formatInline(text string, escape bool) string {
	if text == "" {
		return ""
	}
	if escape {
		text = htmlEscaper.Replace(text)
	}

	var s stash

	text = inlineCodePattern.ReplaceAllStringFunc(text, func(m string) string {
		return s.put("<code>" + m[1:len(m)-1] + "</code>")
	})

	text = linkPattern.ReplaceAllStringFunc(text, func(m string) string {
		// Image syntax is left for the image pass.
		if m[0] == '!' {
			return m
		}
		parts := linkPattern.FindStringSubmatch(m)
		open := s.put(`<a href="` + parts[2] + `" target="_blank" rel="noopener noreferrer">`)
		return open + parts[1] + s.put("</a>")
	})

	text = imagePattern.ReplaceAllStringFunc(text, func(m string) string {
		parts := imagePattern.FindStringSubmatch(m)
		return s.put(`<img src="` + parts[2] + `" alt="` + parts[1] + `" style="max-width: 100%; height: auto;" />`)
	})

	text = boldStarPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderPattern.ReplaceAllString(text, "<strong>$1</strong>")

	text = italicStarPattern.ReplaceAllString(text, "<em>$1</em>")
	text = italicUnderPattern.ReplaceAllString(text, "<em>$1</em>")

	text = strikePattern.ReplaceAllString(text, "<del>$1</del>")

	text = strings.ReplaceAll(text, "\n", "<br>")

	return s.restore(text)
}

// stash collects HTML fragments hidden from later inline passes.
type stash []string

// put stores html and returns the placeholder that stands for it.
func (s *stash) put(html string) string {
	*s = append(*s, html)
	return inlineStart + strconv.Itoa(len(*s)-1) + inlineEnd
}

// restore replaces placeholders with their fragments. Newer fragments may
// embed older placeholders (a link whose URL held inline code), so they are
// restored first.
func (s stash) restore(text string) string {
	for i := len(s) - 1; i >= 0; i-- {
		text = strings.Replace(text, inlineStart+strconv.Itoa(i)+inlineEnd, s[i], 1)
	}
	return text
}
