package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-hubmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxSiteTitleLength   = 200
	MaxNameLength        = 100
	MaxDateFormatLength  = 50
	MaxNameOrPathLength  = 4096 // style name or filesystem path
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxAddrLength        = 255  // host:port
)

// configDirName is the directory under os.UserConfigDir searched for configs.
const configDirName = "go-hubmd"

// Config holds all configuration for rendering a hub's posts.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Render  RenderConfig  `yaml:"render"`
	CSS     CSSConfig     `yaml:"css"`
	Assets  AssetsConfig  `yaml:"assets"`
	Page    PageConfig    `yaml:"page"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
}

// SiteConfig holds hub-wide metadata shown on every post page.
type SiteConfig struct {
	Title      string `yaml:"title"`
	Author     string `yaml:"author"`     // Fallback when a post has no author
	DateFormat string `yaml:"dateFormat"` // Applied to "auto" post dates (e.g. "long", "DD/MM/YYYY")
}

// RenderConfig selects and tunes the Markdown engine.
type RenderConfig struct {
	Engine         string `yaml:"engine"`         // "mini" (default) or "commonmark"
	Highlight      bool   `yaml:"highlight"`      // Syntax highlighting of fenced code
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name (default "github")
	EscapeText     bool   `yaml:"escapeText"`     // Escape raw HTML in prose (mini engine)
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name or path to a .css file
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings for export.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Posts directory used when no input is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// PreviewConfig configures the live preview server.
type PreviewConfig struct {
	Addr string `yaml:"addr"` // Listen address (default ":8080")
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; library users building a Config by hand may call it
// themselves.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxSiteTitleLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.dateFormat", c.Site.DateFormat, MaxDateFormatLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxNameLength},
		{"css.style", c.CSS.Style, MaxNameOrPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxNameOrPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxNameOrPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxNameOrPathLength},
		{"preview.addr", c.Preview.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", "mini", "commonmark":
	default:
		return fmt.Errorf("%w: render.engine %q (must be mini or commonmark)", ErrInvalidValue, c.Render.Engine)
	}

	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// mini engine, no highlighting, embedded default style.
func DefaultConfig() *Config {
	return &Config{
		Render:  RenderConfig{Engine: "mini"},
		Preview: PreviewConfig{Addr: ":8080"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as name.yaml / name.yml in the current directory,
// then in the user config directory (e.g. ~/.config/go-hubmd/).
// A missing file is an error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"."}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, configDirName))
	}

	tried := make([]string, 0, len(dirs)*len(extensions))
	for _, dir := range dirs {
		for _, ext := range extensions {
			p := filepath.Join(dir, name+ext)
			if fileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
