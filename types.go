package hubmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-hubmd/internal/pipeline"
)

// Engine names accepted by WithEngine.
const (
	EngineMini       = pipeline.EngineMini
	EngineCommonMark = pipeline.EngineCommonMark
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Post body (required unless Post carries Content)
	Post      *Post         // Metadata for the page wrapper (optional)
	SourceDir string        // Directory of the post, for relative images in PDFs
	CSS       string        // Extra CSS appended after the style (optional)
	Fragment  bool          // Return the bare fragment, skip page wrapping and PDF
	PDF       bool          // Also render a PDF
	Page      *PageSettings // PDF page settings (nil = defaults)
}

// body returns the Markdown to render: Markdown wins over Post.Content.
func (in Input) body() string {
	if in.Markdown != "" {
		return in.Markdown
	}
	if in.Post != nil {
		return in.Post.Content
	}
	return ""
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	Fragment string // Rendered post body without page wrapper
	HTML     []byte // Full page, empty when Input.Fragment is set
	PDF      []byte // Set only when Input.PDF is set
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	engine         string
	highlight      bool
	highlightStyle string
	escapeText     bool
	styleInput     string // name, file path, or CSS content
	resolvedStyle  string // CSS content after resolution
	assetPath      string
	templateSet    *TemplateSet
	siteTitle      string
	defaultAuthor  string
	dateFormat     string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("hubmd: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the Markdown engine: EngineMini (default) or
// EngineCommonMark. Unknown names make NewConverter fail.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = strings.ToLower(name)
	}
}

// WithHighlight enables syntax highlighting of fenced code with the named
// chroma style. An empty style selects the default ("github").
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithEscapeText makes the mini engine escape raw HTML in prose and inline
// code. Fenced code is always escaped.
func WithEscapeText() Option {
	return func(c *Converter) {
		c.cfg.escapeText = true
	}
}

// WithStyle sets the CSS style for page output.
// Accepts a style name ("default", "minimal"), a file path ("./custom.css"),
// or raw CSS content (detected by presence of "{").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath serves styles and templates from a custom directory,
// falling back to the embedded assets for anything it lacks.
// NewConverter returns ErrInvalidAssetPath if the directory is unusable.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// TemplateSet is a page template supplied directly by the caller.
type TemplateSet struct {
	Name string // Identifier used in error messages
	Page string // html/template source; see PageData fields in the default set
}

// WithTemplateSet uses ts as the page template, bypassing the asset loader.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithSiteTitle sets the hub title shown in every page header.
func WithSiteTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.siteTitle = title
	}
}

// WithDefaultAuthor sets the author shown when a post has none.
func WithDefaultAuthor(name string) Option {
	return func(c *Converter) {
		c.cfg.defaultAuthor = name
	}
}

// WithDateFormat sets how post dates are displayed: a preset name
// (iso, european, us, long) or a token format such as "DD/MM/YYYY".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}
