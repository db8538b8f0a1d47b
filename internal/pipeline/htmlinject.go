package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// PageData holds everything the page template can show around a post body.
type PageData struct {
	SiteTitle  string
	Title      string
	Author     string
	Date       string
	Excerpt    string
	// CoverImage is emitted as a trusted URL so file:// paths survive
	// html/template sanitizing. Callers vet the scheme.
	CoverImage template.URL
	Tags       []string
	Draft      bool
	// Body is the rendered fragment. It is trusted author HTML and is
	// emitted without escaping.
	Body template.HTML
}

// PageWrapper defines the contract for wrapping a fragment in a full page.
type PageWrapper interface {
	WrapPage(ctx context.Context, data *PageData) (string, error)
}

// PageRenderer renders a post page from an html/template.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer creates a PageRenderer from template content.
// Returns error if the template cannot be parsed.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// WrapPage executes the page template. Metadata fields are escaped by
// html/template; Body is not.
func (p *PageRenderer) WrapPage(ctx context.Context, data *PageData) (string, error) {
	if data == nil {
		data = &PageData{}
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
