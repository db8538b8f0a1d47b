package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/fileutil"
	"github.com/alnah/go-hubmd/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	css      string
	fragment bool // Write Fragment instead of the page (render only)
	pdf      bool
	html     bool // Also write the page next to the PDF
	page     *hubmd.PageSettings
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Each worker holds one converter for its whole run.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// Converter creation failed: this worker fails what it drains.
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single post and writes its outputs.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	post, err := hubmd.ParsePost(content)
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	res, err := conv.Convert(ctx, hubmd.Input{
		Post:      post,
		SourceDir: filepath.Dir(f.InputPath),
		CSS:       params.css,
		Fragment:  params.fragment,
		PDF:       params.pdf,
		Page:      params.page,
	})
	if err != nil {
		return fail(err)
	}

	if params.pdf && params.html {
		if err := writeOutput(fileutil.ReplaceExt(f.OutputPath, extHTML), res.HTML); err != nil {
			return fail(err)
		}
	}

	if err := writeOutput(f.OutputPath, outputBytes(res, params)); err != nil {
		return fail(err)
	}

	result.Duration = time.Since(start)
	return result
}

// outputBytes picks the artifact a batch writes to its main output path.
func outputBytes(res *hubmd.ConvertResult, params *conversionParams) []byte {
	switch {
	case params.pdf:
		return res.PDF
	case params.fragment:
		return []byte(res.Fragment)
	default:
		return res.HTML
	}
}

// writeOutput writes data to path, wrapping failures in ErrWriteOutput.
func writeOutput(path string, data []byte) error {
	// #nosec G306 -- rendered posts are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, errorMessage(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
