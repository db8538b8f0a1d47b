// Package dateutil turns user-facing date formats (YYYY-MM-DD, presets) into
// Go layouts, and resolves post dates written as "auto".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDateFormat indicates an invalid date format string.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDate indicates a date value that is neither ISO nor RFC 3339.
	ErrInvalidDate = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens is ordered longest first so MMMM wins over MM.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// storedLayouts are the layouts accepted for dates written in front matter.
var storedLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDateFormat converts a format such as "DD/MM/YYYY" to a Go layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside [brackets] is kept
// literally, as is any character that is not part of a token.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(format[i:], &layout)
		if n == 0 {
			layout.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return layout.String(), nil
}

// matchToken writes the layout for the token at the start of s and returns
// its length, or 0 when s does not start with a token.
func matchToken(s string, w *strings.Builder) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			w.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// Layout resolves a preset name (case-insensitive) or a token format to a
// Go layout.
func Layout(formatOrPreset string) (string, error) {
	if preset, ok := DatePresets[strings.ToLower(formatOrPreset)]; ok {
		formatOrPreset = preset
	}
	return ParseDateFormat(formatOrPreset)
}

// ResolveDate handles "auto" and "auto:FORMAT" values:
//   - "auto" gives now in YYYY-MM-DD
//   - "auto:FORMAT" gives now in a token format or preset (iso, european, us, long)
//   - anything else is returned unchanged
func ResolveDate(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultDateFormat
	if lower != "auto" {
		if !strings.HasPrefix(lower, "auto:") {
			return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		// Tokens are case-sensitive, so slice the original value.
		format = value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// Reformat parses a stored date (YYYY-MM-DD or RFC 3339) and renders it with
// formatOrPreset. An empty format returns the date unchanged.
func Reformat(date, formatOrPreset string) (string, error) {
	if date == "" || formatOrPreset == "" {
		return date, nil
	}

	t, err := ParseStored(date)
	if err != nil {
		return "", err
	}
	layout, err := Layout(formatOrPreset)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// ParseStored parses a date written as YYYY-MM-DD or RFC 3339.
func ParseStored(date string) (time.Time, error) {
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD or RFC 3339)", ErrInvalidDate, date)
}
