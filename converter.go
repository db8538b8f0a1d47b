package hubmd

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-hubmd/internal/assets"
	"github.com/alnah/go-hubmd/internal/dateutil"
	"github.com/alnah/go-hubmd/internal/fileutil"
	"github.com/alnah/go-hubmd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PostPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.MiniConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CodeHighlighter      = (*pipeline.Highlighter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.PageWrapper          = (*pipeline.PageRenderer)(nil)
)

// Converter orchestrates the post rendering pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is safe for concurrent use; PDF rendering is serialized on
// its single browser.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	highlighter   pipeline.CodeHighlighter // nil when highlighting is off
	cssInjector   pipeline.CSSInjector
	pageWrapper   pipeline.PageWrapper
	pdfConverter  pdfConverter
	now           func() time.Time
}

// NewConverter creates a Converter with default configuration: mini engine,
// no highlighting, embedded default style and page template.
// Returns error if an option names an unknown engine, style or template.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.PostPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.cfg.dateFormat != "" {
		if _, err := dateutil.Layout(c.cfg.dateFormat); err != nil {
			return nil, err
		}
	}

	if err := c.initEngine(); err != nil {
		return nil, err
	}
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	if err := c.initPageWrapper(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// initEngine builds the Markdown engine and, when enabled, the highlighter.
// The commonmark engine highlights while rendering; the highlighter then
// only supplies the stylesheet.
func (c *Converter) initEngine() error {
	if c.cfg.highlight && c.highlighter == nil {
		h, err := pipeline.NewHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return err
		}
		c.highlighter = h
	}
	if c.htmlConverter != nil {
		return nil
	}

	engineOpts := pipeline.EngineOptions{EscapeText: c.cfg.escapeText}
	if c.cfg.highlight {
		engineOpts.HighlightStyle = c.cfg.highlightStyle
		if engineOpts.HighlightStyle == "" {
			engineOpts.HighlightStyle = pipeline.DefaultHighlightStyle
		}
	}

	conv, err := pipeline.NewHTMLConverter(c.cfg.engine, engineOpts)
	if err != nil {
		return err
	}
	c.htmlConverter = conv
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. No input selects the default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// initPageWrapper parses the page template from WithTemplateSet or the
// asset loader.
func (c *Converter) initPageWrapper() error {
	if c.pageWrapper != nil {
		return nil
	}

	name, page := "", ""
	if ts := c.cfg.templateSet; ts != nil {
		name, page = ts.Name, ts.Page
	} else {
		ts, err := c.assetLoader.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			return fmt.Errorf("loading default template set: %w", err)
		}
		name, page = ts.Name, ts.Page
	}

	pr, err := pipeline.NewPageRenderer(page)
	if err != nil {
		return fmt.Errorf("template set %q: %w", name, err)
	}
	c.pageWrapper = pr
	return nil
}

// Convert runs the pipeline and returns the fragment, the page and, when
// input.PDF is set, the PDF.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.body())
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// The commonmark engine has already highlighted while rendering.
	if c.highlighter != nil && c.cfg.engine != EngineCommonMark {
		fragment = c.highlighter.Highlight(ctx, fragment)
	}

	res := &ConvertResult{Fragment: fragment}
	if input.Fragment {
		return res, nil
	}

	body := fragment
	if input.PDF && input.SourceDir != "" {
		body, err = pipeline.RewriteRelativePaths(body, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	data, err := c.pageData(input, body)
	if err != nil {
		return nil, err
	}
	page, err := c.pageWrapper.WrapPage(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("wrapping page: %w", err)
	}

	// Order matters: base style first, user CSS last (can override).
	cssContent := c.cfg.resolvedStyle
	if c.highlighter != nil {
		cssContent += "\n" + c.highlighter.CSS()
	}
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	page = c.cssInjector.InjectCSS(ctx, page, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	res.HTML = []byte(page)

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// pageData fills the page template fields from the post, applying the
// converter's fallbacks for date, author and excerpt.
func (c *Converter) pageData(input Input, body string) (*pipeline.PageData, error) {
	data := &pipeline.PageData{
		SiteTitle: c.cfg.siteTitle,
		Author:    c.cfg.defaultAuthor,
		Body:      template.HTML(body), // #nosec G203 -- rendered author content
	}

	p := input.Post
	if p == nil {
		return data, nil
	}

	date, err := c.displayDate(p.Date)
	if err != nil {
		return nil, err
	}

	data.Title = p.Title
	data.Date = date
	data.Excerpt = (&Post{Excerpt: p.Excerpt, Content: input.body()}).Summary()
	data.Tags = p.Tags
	data.Draft = p.Draft
	if p.Author != "" {
		data.Author = p.Author
	}
	data.CoverImage = coverURL(p.CoverImage, input.SourceDir, input.PDF)
	return data, nil
}

// displayDate resolves "auto" dates against the converter clock and applies
// the configured display format. "auto:FORMAT" already carries its own
// format and is not reformatted.
func (c *Converter) displayDate(raw string) (string, error) {
	date, err := dateutil.ResolveDate(raw, c.now())
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(strings.ToLower(raw), "auto:") {
		return date, nil
	}
	return dateutil.Reformat(date, c.cfg.dateFormat)
}

// coverURL vets a cover image reference. Unsafe schemes are dropped.
// For PDF output a relative path inside sourceDir becomes a file:// URL.
func coverURL(raw, sourceDir string, forPDF bool) template.URL {
	if raw == "" || !isSafeImageURL(raw) {
		return ""
	}
	if forPDF && sourceDir != "" {
		if abs, err := filepath.Abs(sourceDir); err == nil {
			if p, ok := pipeline.ResolveLocalPath(raw, abs); ok {
				u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
				return template.URL(u.String()) // #nosec G203 -- local path under sourceDir
			}
		}
	}
	return template.URL(raw) // #nosec G203 -- scheme vetted by isSafeImageURL
}

// validateInput checks that required fields are present and valid.
//
// This is the trust boundary for library users who build Input manually.
// CLI users also pass Config.Validate() at config load time.
//
// A blank body is only an error for a bare Markdown page: fragments render
// to "" (the editor preview of a cleared draft) and a post with only front
// matter still has a page.
func (c *Converter) validateInput(input Input) error {
	if !input.Fragment && input.Post == nil && strings.TrimSpace(input.body()) == "" {
		return ErrEmptyMarkdown
	}
	if input.PDF {
		if err := input.Page.Validate(); err != nil {
			return err
		}
	}
	return nil
}
