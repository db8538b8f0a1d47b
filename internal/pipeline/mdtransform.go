package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// byteOrderMark is stripped from the start of posts saved by some editors.
const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// PostPreprocessor normalizes post bodies before conversion.
// Blank line runs are left alone: both engines collapse them in the output,
// and fenced code must keep them.
type PostPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *PostPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and lone \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
