package markdown

import (
	"regexp"
	"strings"
)

// Kind identifies the block a single line belongs to.
type Kind int

// Line kinds, in no particular order.
const (
	KindBlank Kind = iota
	KindHeading
	KindQuote
	KindListItem
	KindParagraph
	KindCode
)

// String returns the kind name, used in test failure messages.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading:
		return "heading"
	case KindQuote:
		return "quote"
	case KindListItem:
		return "list-item"
	case KindParagraph:
		return "paragraph"
	case KindCode:
		return "code"
	}
	return "unknown"
}

// Line is a classified source line.
type Line struct {
	Kind    Kind
	Level   int    // heading level, 1-4
	Ordered bool   // list items only
	Text    string // content with the block marker removed
}

// headingPrefixes are checked longest first. Five or more '#' match none
// of them and fall through to paragraph handling.
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"#### ", 4},
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

var (
	bulletMarker  = regexp.MustCompile(`^[*-]\s`)
	orderedMarker = regexp.MustCompile(`^\d+\.\s`)
)

// splitLines splits text on "\n", dropping a "\r" that precedes it.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Classify determines the block kind of a raw line. The line is trimmed
// before matching, so indentation never changes its kind.
// Headings deeper than level 4 are not recognized and become paragraphs.
func Classify(raw string) Line {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return Line{Kind: KindBlank}
	}

	if isPlaceholder(trimmed) {
		return Line{Kind: KindCode, Text: trimmed}
	}

	for _, h := range headingPrefixes {
		if strings.HasPrefix(trimmed, h.prefix) {
			return Line{
				Kind:  KindHeading,
				Level: h.level,
				Text:  strings.TrimSpace(trimmed[len(h.prefix):]),
			}
		}
	}

	if strings.HasPrefix(trimmed, ">") {
		return Line{Kind: KindQuote, Text: strings.TrimSpace(trimmed[1:])}
	}

	if loc := bulletMarker.FindStringIndex(trimmed); loc != nil {
		return Line{Kind: KindListItem, Text: trimmed[loc[1]:]}
	}
	if loc := orderedMarker.FindStringIndex(trimmed); loc != nil {
		return Line{Kind: KindListItem, Ordered: true, Text: trimmed[loc[1]:]}
	}

	return Line{Kind: KindParagraph, Text: trimmed}
}
