package main

import (
	"errors"
	"os"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/config"
)

// Exit codes for the hubmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, hubmd.ErrBrowserConnect) ||
		errors.Is(err, hubmd.ErrPageCreate) ||
		errors.Is(err, hubmd.ErrPageLoad) ||
		errors.Is(err, hubmd.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrPostExists) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, hubmd.ErrEmptyMarkdown) ||
		errors.Is(err, hubmd.ErrInvalidPageSize) ||
		errors.Is(err, hubmd.ErrInvalidOrientation) ||
		errors.Is(err, hubmd.ErrInvalidMargin) ||
		errors.Is(err, hubmd.ErrFrontMatter) ||
		errors.Is(err, hubmd.ErrInvalidPost) ||
		errors.Is(err, hubmd.ErrUnknownEngine) ||
		errors.Is(err, hubmd.ErrUnknownHighlightStyle) ||
		errors.Is(err, hubmd.ErrInvalidDateFormat) ||
		errors.Is(err, hubmd.ErrInvalidDate) ||
		errors.Is(err, hubmd.ErrStyleNotFound) ||
		errors.Is(err, hubmd.ErrTemplateSetNotFound) ||
		errors.Is(err, hubmd.ErrIncompleteTemplateSet) ||
		errors.Is(err, hubmd.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
