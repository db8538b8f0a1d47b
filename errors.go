package hubmd

import (
	"errors"

	"github.com/alnah/go-hubmd/internal/assets"
	"github.com/alnah/go-hubmd/internal/dateutil"
	"github.com/alnah/go-hubmd/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Post errors.
	ErrFrontMatter = errors.New("invalid front matter")
	ErrInvalidPost = errors.New("invalid post")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors surfaced from internal packages, re-exported so callers can match
// them with errors.Is.
var (
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrUnknownEngine         = pipeline.ErrUnknownEngine
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
	ErrPageRender            = pipeline.ErrPageRender
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
	ErrInvalidDateFormat     = dateutil.ErrInvalidDateFormat
	ErrInvalidDate           = dateutil.ErrInvalidDate
)
