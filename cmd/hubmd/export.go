package main

import (
	"context"
	"fmt"
)

// runExportCmd exports posts to PDF through the converter pool.
func runExportCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers, err := resolveWorkers(flags.workers, envCfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeEngineFlags(&flags.engine, cfg)
	mergePageFlags(&flags.page, cfg)

	page := pageSettings(cfg)
	if err := page.Validate(); err != nil {
		return err
	}

	css, err := readCSS(flags.engine.css)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	if inputPath == stdinArg {
		return fmt.Errorf("%w: export reads files, not stdin", ErrUsage)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), extPDF)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	params := &conversionParams{css: css, pdf: true, html: flags.html, page: page}
	return runBatch(ctx, inputPath, files, params, converterOptions(cfg, timeout), workers, flags.common, env)
}
