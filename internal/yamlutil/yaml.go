// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files and post front matter both go through it.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// frontMatterDelimiter opens and closes a front matter block.
const frontMatterDelimiter = "---"

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// document that follows it. The first line must be exactly "---"; the block
// ends at the next line that is "---" or "...".
// ok is false when the document has no complete front matter block, in
// which case body is the whole input.
func SplitFrontMatter(doc string) (frontMatter []byte, body string, ok bool) {
	first, rest, found := strings.Cut(doc, "\n")
	if !found || strings.TrimRight(first, " \t\r") != frontMatterDelimiter {
		return nil, doc, false
	}

	var fm strings.Builder
	for rest != "" {
		line, next, _ := strings.Cut(rest, "\n")
		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == frontMatterDelimiter || trimmed == "..." {
			return []byte(fm.String()), next, true
		}
		fm.WriteString(strings.TrimSuffix(line, "\r"))
		fm.WriteByte('\n')
		rest = next
	}
	return nil, doc, false
}
