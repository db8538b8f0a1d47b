package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-hubmd/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "HUBMD_"

// envConfig holds configuration from HUBMD_* environment variables,
// for CI runs without a YAML file.
type envConfig struct {
	ConfigPath string        `env:"CONFIG"`  // config file name or path
	Style      string        `env:"STYLE"`   // CSS style name or path
	Engine     string        `env:"ENGINE"`  // mini or commonmark
	Timeout    time.Duration `env:"TIMEOUT"` // PDF export timeout

	InputDir  string `env:"INPUT_DIR"`  // default posts directory
	OutputDir string `env:"OUTPUT_DIR"` // default output directory
	SiteTitle string `env:"SITE_TITLE"` // hub title in page headers
	Author    string `env:"AUTHOR"`     // fallback post author

	PageSize string `env:"PAGE_SIZE"` // a4, letter, legal
	Addr     string `env:"ADDR"`      // preview listen address
	Workers  int    `env:"WORKERS"`   // parallel export workers
}

// knownEnvVars lists valid HUBMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HUBMD_CONFIG":     true,
	"HUBMD_STYLE":      true,
	"HUBMD_ENGINE":     true,
	"HUBMD_TIMEOUT":    true,
	"HUBMD_INPUT_DIR":  true,
	"HUBMD_OUTPUT_DIR": true,
	"HUBMD_SITE_TITLE": true,
	"HUBMD_AUTHOR":     true,
	"HUBMD_PAGE_SIZE":  true,
	"HUBMD_ADDR":       true,
	"HUBMD_WORKERS":    true,
	"HUBMD_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	var cfg envConfig
	// Parse errors only concern malformed numbers, reset below.
	_ = env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix})

	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	return &cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HUBMD_* variables.
// Helps catch typos like HUBMD_STLYE.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by mergeEngineFlags and mergePageFlags).
func applyEnvConfig(ec *envConfig, cfg *config.Config) {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.CSS.Style, ec.Style)
	override(&cfg.Render.Engine, ec.Engine)
	override(&cfg.Input.DefaultDir, ec.InputDir)
	override(&cfg.Output.DefaultDir, ec.OutputDir)
	override(&cfg.Site.Title, ec.SiteTitle)
	override(&cfg.Site.Author, ec.Author)
	override(&cfg.Page.Size, ec.PageSize)
	override(&cfg.Preview.Addr, ec.Addr)
}
