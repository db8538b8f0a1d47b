package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownHighlightStyle indicates a chroma style name that is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// codeBlockPattern matches the fenced code markup produced by both engines.
// Captures: 1=language, 2=escaped body
var codeBlockPattern = regexp.MustCompile(`(?s)<pre><code class="language-([\w+#-]+)">(.*?)</code></pre>`)

// CodeHighlighter defines the contract for syntax highlighting of an HTML fragment.
type CodeHighlighter interface {
	Highlight(ctx context.Context, fragment string) string
	CSS() string
}

// Highlighter replaces language-tagged code blocks with chroma markup.
// Blocks without a language, or with a language chroma does not know,
// are left untouched.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for the named chroma style.
// An empty name selects DefaultHighlightStyle.
func NewHighlighter(styleName string) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

// Highlight returns fragment with every recognized code block highlighted.
func (h *Highlighter) Highlight(ctx context.Context, fragment string) string {
	if ctx.Err() != nil || !strings.Contains(fragment, `<pre><code class="language-`) {
		return fragment
	}

	return codeBlockPattern.ReplaceAllStringFunc(fragment, func(match string) string {
		parts := codeBlockPattern.FindStringSubmatch(match)
		lexer := lexers.Get(parts[1])
		if lexer == nil {
			return match
		}

		iterator, err := chroma.Coalesce(lexer).Tokenise(nil, html.UnescapeString(parts[2]))
		if err != nil {
			return match
		}

		var buf strings.Builder
		if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
			return match
		}
		return buf.String()
	})
}

// CSS returns the stylesheet for the chroma classes emitted by Highlight.
func (h *Highlighter) CSS() string {
	var buf strings.Builder
	// Writing to a strings.Builder cannot fail.
	_ = h.formatter.WriteCSS(&buf, h.style)
	return buf.String()
}
