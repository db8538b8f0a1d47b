// Package hints appends short remediation advice to CLI error messages.
//
// Every hint renders as "\n  hint: <text>" so it lines up under the
// "error: ..." line the CLI prints.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-hubmd/internal/fileutil"
)

const prefix = "\n  hint: "

// ciEnvVars are set by the CI systems where Chrome usually needs
// --no-sandbox.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether the process runs inside Docker.
// It is a variable so tests can fake the environment.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the rod environment variables that are not
// already set and that matter where the CLI runs.
func ForBrowserConnect() string {
	var parts []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return join(parts)
}

// ForTimeout follows a deadline error during export.
func ForTimeout() string {
	return format("for long posts or slow image hosts, use --timeout flag")
}

// ForConfigNotFound points at --config, and at the user config directory
// when it was one of the searched locations.
func ForConfigNotFound(searchedPaths []string) string {
	text := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-hubmd") {
			return format(text + " or create " + p)
		}
	}
	return format(text)
}

// ForOutputDirectory follows a failed MkdirAll on the output tree.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles. Empty when there are none.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle names a few chroma styles.
func ForHighlightStyle() string {
	return format("try github, monokai, dracula or solarized-dark")
}

// ForFrontMatter recalls the post header layout.
func ForFrontMatter() string {
	return format("front matter is YAML between two --- lines; keys: title, slug, excerpt, coverImage, tags, public, draft, date, author")
}

// ForAddrInUse follows a failed listen in preview.
func ForAddrInUse() string {
	return format("another process holds the port; use --addr :8081")
}

func inCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

func format(text string) string {
	if text == "" {
		return ""
	}
	return prefix + text
}

func join(parts []string) string {
	return format(strings.Join(parts, "; "))
}
