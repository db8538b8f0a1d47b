package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-hubmd/internal/markdown"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Engine names accepted by NewHTMLConverter.
const (
	EngineMini       = "mini"
	EngineCommonMark = "commonmark"
)

// ErrUnknownEngine indicates an engine name NewHTMLConverter does not know.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// EngineOptions configures the converter built by NewHTMLConverter.
type EngineOptions struct {
	EscapeText     bool   // mini engine: escape prose and inline code
	HighlightStyle string // commonmark engine: chroma style, "" disables highlighting
}

// NewHTMLConverter returns the converter for the named engine.
// An empty name selects the mini engine.
func NewHTMLConverter(engine string, opts EngineOptions) (HTMLConverter, error) {
	switch engine {
	case "", EngineMini:
		return NewMiniConverter(markdown.Options{EscapeText: opts.EscapeText}), nil
	case EngineCommonMark:
		return NewGoldmarkConverter(opts.HighlightStyle), nil
	}
	return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, engine, EngineMini, EngineCommonMark)
}

// MiniConverter renders with the hub's own line-based engine.
type MiniConverter struct {
	r *markdown.Renderer
}

// NewMiniConverter creates a MiniConverter with the given engine options.
func NewMiniConverter(opts markdown.Options) *MiniConverter {
	return &MiniConverter{r: markdown.New(opts)}
}

// ToHTML renders content to an HTML fragment. The engine is total and
// linear in input size, so only the context is checked.
func (c *MiniConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.r.Render(content), nil
}

// GoldmarkConverter converts CommonMark to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
// A non-empty style enables chroma syntax highlighting with CSS classes.
func NewGoldmarkConverter(style string) *GoldmarkConverter {
	exts := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if style != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // stylesheet emitted once by the page renderer
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>, like the mini engine
			html.WithXHTML(),     // Self-closing tags
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
