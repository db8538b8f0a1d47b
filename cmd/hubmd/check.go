package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/fileutil"
)

// checkResult holds the outcome of validating one post file.
type checkResult struct {
	Path     string
	Post     *hubmd.Post
	Err      error
	Warnings []string
}

// runCheckCmd validates every post under the given inputs.
func runCheckCmd(args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	inputs := positional
	if len(inputs) == 0 {
		cfg, err := loadConfig(flags.config, loadEnvConfig(), env)
		if err != nil {
			return err
		}
		input, err := resolveInputPath(nil, cfg)
		if err != nil {
			return err
		}
		inputs = []string{input}
	}

	var results []checkResult
	for _, input := range inputs {
		files, err := discoverFiles(input, "", extHTML)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		for _, f := range files {
			results = append(results, checkFile(f.InputPath))
		}
	}

	failed := 0
	for _, r := range results {
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.Path, w)
		}
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.Path, errorMessage(r.Err))
			continue
		}
		if flags.quiet {
			continue
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "ok %s (slug %s, %s)\n", r.Path, r.Post.Slug, postState(r.Post))
		} else {
			fmt.Fprintf(env.Stdout, "ok %s\n", r.Path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d posts", hubmd.ErrInvalidPost, failed, len(results))
	}
	return nil
}

// checkFile parses and validates one post. A local cover image that does
// not exist is a warning, since it may be uploaded separately.
func checkFile(path string) checkResult {
	r := checkResult{Path: path}

	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return r
	}

	post, err := hubmd.ParsePost(content)
	if err != nil {
		r.Err = err
		return r
	}
	r.Post = post

	if err := post.Validate(); err != nil {
		r.Err = err
		return r
	}

	if cover := post.CoverImage; cover != "" && !fileutil.IsURL(cover) && !strings.HasPrefix(cover, "/") {
		if !fileutil.FileExists(filepath.Join(filepath.Dir(path), cover)) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("cover image %s not found", cover))
		}
	}
	return r
}

// postState describes a post's visibility for verbose output.
func postState(p *hubmd.Post) string {
	switch {
	case p.Draft:
		return "draft"
	case p.Public:
		return "public"
	default:
		return "private"
	}
}
