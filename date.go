package hubmd

import (
	"time"

	"github.com/alnah/go-hubmd/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values:
//   - "auto" gives now as YYYY-MM-DD
//   - "auto:FORMAT" uses tokens such as "auto:DD/MM/YYYY"
//   - "auto:preset" uses a named preset (iso, european, us, long)
//   - any other value is returned unchanged
//
// now is a parameter so callers (and tests) control the clock.
func ResolveDate(value string, now time.Time) (string, error) {
	return dateutil.ResolveDate(value, now)
}

// FormatDate renders a stored YYYY-MM-DD or RFC 3339 date with a token
// format or preset name. An empty format returns date unchanged.
func FormatDate(date, format string) (string, error) {
	return dateutil.Reformat(date, format)
}
