package markdown

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// DefaultExcerptLength is the excerpt size, in runes, used by post pages.
const DefaultExcerptLength = 200

// ellipsis marks a truncated excerpt.
const ellipsis = "…"

// Excerpt returns the plain text of the first paragraph of markdown,
// truncated to at most maxRunes runes (plus an ellipsis) at a word boundary.
// Consecutive paragraph lines form one paragraph; lines continuing a quote
// do not count. Returns "" when the document has no paragraph.
func Excerpt(markdown string, maxRunes int) string {
	text, _ := extractFences(markdown)

	var para []string
	inQuote := false
	for _, raw := range splitLines(text) {
		line := Classify(raw)
		if line.Kind == KindParagraph && !inQuote {
			para = append(para, line.Text)
			continue
		}
		if len(para) > 0 {
			break
		}
		inQuote = line.Kind == KindQuote || (inQuote && line.Kind == KindParagraph)
	}
	if len(para) == 0 {
		return ""
	}

	return truncateWords(plainText(formatInline(strings.Join(para, " "), false)), maxRunes)
}

// plainText drops tags from an HTML snippet and collapses whitespace.
func plainText(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte(' ')
			}
		}
	}
}

// truncateWords cuts s to maxRunes runes, backing up to the last space when
// one exists, and appends an ellipsis.
func truncateWords(s string, maxRunes int) string {
	r := []rune(s)
	if maxRunes <= 0 || len(r) <= maxRunes {
		return s
	}

	cut := r[:maxRunes]
	if i := lastSpace(cut); i > 0 {
		cut = cut[:i]
	}
	trimmed := strings.TrimRightFunc(string(cut), func(c rune) bool {
		return unicode.IsSpace(c) || unicode.IsPunct(c)
	})
	return trimmed + ellipsis
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}
