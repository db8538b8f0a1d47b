package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Code block placeholders use Private Use Area characters so they cannot
// be produced by the block or inline patterns. Each extracted block is
// replaced by codeStart + index + codeEnd on a line of its own.
const (
	codeStart = "\uE002" // U+E002: Private Use Area
	codeEnd   = "\uE003" // U+E003: Private Use Area
)

// fencePattern matches a fence opened at the start of a line, after
// optional spaces or tabs, by three backticks and an optional language tag,
// up to the next three backticks. The opening indent is dropped with the
// fence; the body keeps its own.
var fencePattern = regexp.MustCompile("(?ms)^[ \\t]*```(\\w+)?[ \\t]*\\r?\\n(.*?)```")

// htmlEscaper escapes the three characters that matter inside <pre>.
// Quotes are left alone.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// codeBlocks holds the rendered HTML of every extracted fence, indexed by
// placeholder number.
type codeBlocks []string

// extractFences replaces every fenced code span in src with a placeholder
// line and returns the rewritten text with the rendered blocks.
// An opening fence without a closing fence is left untouched.
func extractFences(src string) (string, codeBlocks) {
	var blocks codeBlocks
	text := fencePattern.ReplaceAllStringFunc(src, func(match string) string {
		parts := fencePattern.FindStringSubmatch(match)
		blocks = append(blocks, renderCodeBlock(parts[1], parts[2]))
		return codeStart + strconv.Itoa(len(blocks)-1) + codeEnd + "\n"
	})
	return text, blocks
}

// renderCodeBlock escapes body and wraps it in <pre><code>, adding a
// language class when lang is set.
func renderCodeBlock(lang, body string) string {
	var b strings.Builder
	b.Grow(len(body) + 48)
	b.WriteString("<pre><code")
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(lang)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(htmlEscaper.Replace(body))
	b.WriteString("</code></pre>")
	return b.String()
}

// isPlaceholder reports whether trimmed is exactly one code placeholder.
func isPlaceholder(trimmed string) bool {
	if !strings.HasPrefix(trimmed, codeStart) || !strings.HasSuffix(trimmed, codeEnd) {
		return false
	}
	digits := trimmed[len(codeStart) : len(trimmed)-len(codeEnd)]
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// restore swaps every placeholder in html for its rendered code block.
func (c codeBlocks) restore(html string) string {
	if len(c) == 0 {
		return html
	}
	pairs := make([]string, 0, len(c)*2)
	for i, block := range c {
		pairs = append(pairs, codeStart+strconv.Itoa(i)+codeEnd, block)
	}
	return strings.NewReplacer(pairs...).Replace(html)
}
