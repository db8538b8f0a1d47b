package main

// Notes:
// - exitCodeFor: sentinel errors from the library, config and CLI, plus
//   wrapped errors to verify the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", hubmd.ErrBrowserConnect, ExitBrowser},
		{"page load", hubmd.ErrPageLoad, ExitBrowser},
		{"pdf generation", hubmd.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", hubmd.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"post exists", ErrPostExists, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", hubmd.ErrEmptyMarkdown, ExitUsage},
		{"invalid page size", hubmd.ErrInvalidPageSize, ExitUsage},
		{"front matter", hubmd.ErrFrontMatter, ExitUsage},
		{"invalid post", hubmd.ErrInvalidPost, ExitUsage},
		{"unknown engine", hubmd.ErrUnknownEngine, ExitUsage},
		{"unknown highlight style", hubmd.ErrUnknownHighlightStyle, ExitUsage},
		{"style not found", hubmd.ErrStyleNotFound, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"single failed batch keeps cause", fmt.Errorf("%w: %w", ErrConversionFailed, hubmd.ErrFrontMatter), ExitUsage},

		// General errors (exit 1)
		{"multi-file batch failure", ErrConversionFailed, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_BelowShellReserved(t *testing.T) {
	t.Parallel()

	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
