package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads styles and template sets from a directory laid out
// like the embedded assets:
//
//	{root}/styles/{name}.css
//	{root}/templates/{name}/page.html
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader opens root as an asset directory.
// Returns ErrInvalidBasePath unless root is a readable directory.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if _, err := os.ReadDir(abs); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		case isNotDir(abs):
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
		default:
			return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
		}
	}

	return &FilesystemLoader{root: abs}, nil
}

// LoadStyle returns the content of styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	p, err := f.resolve("styles", name+".css")
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// LoadTemplateSet reads templates/{name}/page.html. A directory without the
// page template is ErrIncompleteTemplateSet rather than not found.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir, err := f.resolve("templates", name)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, pageTemplateFile)) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, pageTemplateFile)
	case err != nil:
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, pageTemplateFile, err)
	}
	return &TemplateSet{Name: name, Page: string(data)}, nil
}

// resolve joins elem onto root and returns ErrPathTraversal when the
// result, with symlinks followed, is not inside root. A path that does not
// exist yet is checked unresolved; opening it fails later.
func (f *FilesystemLoader) resolve(elem ...string) (string, error) {
	p := filepath.Join(append([]string{f.root}, elem...)...)
	checked := p
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		checked = resolved
	}
	if !strings.HasPrefix(checked, f.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return p, nil
}

func isNotDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

var _ AssetLoader = (*FilesystemLoader)(nil)
