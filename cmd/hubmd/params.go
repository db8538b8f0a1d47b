package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/config"
	"github.com/alnah/go-hubmd/internal/fileutil"
	"github.com/alnah/go-hubmd/internal/hints"
)

// loadConfig resolves the effective configuration.
// Precedence: --config flag > HUBMD_CONFIG > env.Config. Set HUBMD_*
// variables then override the file.
func loadConfig(flagConfig string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name == "" {
		cfg = config.DefaultConfig()
		if env.Config != nil {
			copied := *env.Config
			cfg = &copied
		}
	} else {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configCandidates(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// configCandidates lists where a config name is looked up, for hints.
func configCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-hubmd", name+".yaml"))
	}
	return paths
}

// converterOptions translates the merged config into converter options.
// A zero timeout keeps the library default.
func converterOptions(cfg *config.Config, timeout time.Duration) []hubmd.Option {
	opts := []hubmd.Option{
		hubmd.WithEngine(cfg.Render.Engine),
		hubmd.WithSiteTitle(cfg.Site.Title),
		hubmd.WithDefaultAuthor(cfg.Site.Author),
		hubmd.WithDateFormat(cfg.Site.DateFormat),
	}
	if cfg.Render.Highlight {
		opts = append(opts, hubmd.WithHighlight(cfg.Render.HighlightStyle))
	}
	if cfg.Render.EscapeText {
		opts = append(opts, hubmd.WithEscapeText())
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, hubmd.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, hubmd.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, hubmd.WithTimeout(timeout))
	}
	return opts
}

// pageSettings builds PDF page settings from config, filling defaults for
// empty fields.
func pageSettings(cfg *config.Config) *hubmd.PageSettings {
	ps := hubmd.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		ps.Margin = cfg.Page.Margin
	}
	return ps
}

// resolveTimeout determines the PDF timeout.
// Priority: --timeout flag > HUBMD_TIMEOUT > library default (zero).
func resolveTimeout(flagValue string, envCfg *envConfig) (time.Duration, error) {
	if flagValue == "" {
		return envCfg.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveWorkers validates the --workers flag, falling back to HUBMD_WORKERS.
func resolveWorkers(flagValue int, envCfg *envConfig) (int, error) {
	if err := validateWorkers(flagValue); err != nil {
		return 0, err
	}
	if flagValue == 0 && envCfg.Workers > 0 {
		if err := validateWorkers(envCfg.Workers); err != nil {
			return 0, err
		}
		return envCfg.Workers, nil
	}
	return flagValue, nil
}

// resolveInputPath picks the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks the --output flag or the configured default.
func resolveOutputDir(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Output.DefaultDir
}

// readCSS loads the --css file. An empty path yields no extra CSS.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}
