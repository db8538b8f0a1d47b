package main

import (
	"context"
	"fmt"
	"io"

	hubmd "github.com/alnah/go-hubmd"
)

// stdinArg selects standard input as the post source.
const stdinArg = "-"

// runRenderCmd renders posts to HTML pages or fragments.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers, err := resolveWorkers(flags.workers, envCfg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeEngineFlags(&flags.engine, cfg)

	css, err := readCSS(flags.engine.css)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{css: css, fragment: flags.fragment}
	opts := converterOptions(cfg, 0)

	if inputPath == stdinArg {
		return renderStdin(ctx, flags.output, params, opts, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), extHTML)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	return runBatch(ctx, inputPath, files, params, opts, workers, flags.common, env)
}

// renderStdin renders one post read from env.Stdin to output, or to
// env.Stdout when output is empty.
func renderStdin(ctx context.Context, output string, params *conversionParams, opts []hubmd.Option, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	post, err := hubmd.ParsePost(content)
	if err != nil {
		return err
	}

	pool := env.NewPool(1, opts...)
	defer func() { _ = pool.Close() }()

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, hubmd.Input{Post: post, CSS: params.css, Fragment: params.fragment})
	if err != nil {
		return err
	}

	data := outputBytes(res, params)
	if output == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	return writeOutput(output, data)
}

// runBatch converts files through a fresh pool and reports the results.
// A single failed post surfaces its own error so the exit code names the
// cause.
func runBatch(ctx context.Context, inputPath string, files []FileToConvert, params *conversionParams,
	opts []hubmd.Option, workers int, common commonFlags, env *Environment,
) error {
	if len(files) == 0 {
		fmt.Fprintf(env.Stderr, "no markdown files found in %s\n", inputPath)
		return nil
	}

	size := min(hubmd.ResolvePoolSize(workers), len(files))
	if common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}

	pool := env.NewPool(size, opts...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, files, params)
	failed := printResults(results, common.quiet, common.verbose, env)
	if failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return fmt.Errorf("%w: %w", ErrConversionFailed, results[0].Err)
	}
	return fmt.Errorf("%w: %d of %d posts", ErrConversionFailed, failed, len(results))
}
