package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/fileutil"
)

// newPostBody is the placeholder body of a scaffolded post.
const newPostBody = "Write your post here.\n"

// runNewCmd writes a draft post whose front matter is derived from a title.
func runNewCmd(args []string, env *Environment) error {
	flags, positional, err := parseNewFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(positional, " "))
	if title == "" {
		return fmt.Errorf("%w: new needs a title", ErrUsage)
	}

	post := hubmd.NewPost(title)
	post.Date = "auto"
	post.Content = newPostBody
	if err := post.Validate(); err != nil {
		return err
	}

	path := newPostPath(post.Slug, flags.output)
	if !flags.force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrPostExists, path)
	}

	data, err := post.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := writeOutput(path, data); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}

// newPostPath resolves where a new post is written: output itself when it
// names a Markdown file, <slug>.md inside output otherwise.
func newPostPath(slug, output string) string {
	name := slug + ".md"
	switch {
	case output == "":
		return name
	case fileutil.IsMarkdown(output):
		return output
	default:
		return filepath.Join(output, name)
	}
}
