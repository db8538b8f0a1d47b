package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeAsset creates a file under dir, creating parent directories.
func writeAsset(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "file.txt", "x")

		_, err := NewFilesystemLoader(filepath.Join(dir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/custom.css", "body { color: red; }")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadStyle("custom")
	if err != nil {
		t.Fatalf("LoadStyle() error: %v", err)
	}
	if got != "body { color: red; }" {
		t.Errorf("LoadStyle() = %q", got)
	}

	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("missing style error = %v, want ErrStyleNotFound", err)
	}
}

func TestFilesystemLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/blog/page.html", "<main>{{.Body}}</main>")
	if err := os.MkdirAll(filepath.Join(dir, "templates", "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name     string
		set      string
		wantPage string
		wantErr  error
	}{
		{name: "complete set", set: "blog", wantPage: "<main>{{.Body}}</main>"},
		{name: "missing set", set: "none", wantErr: ErrTemplateSetNotFound},
		{name: "set without page", set: "empty", wantErr: ErrIncompleteTemplateSet},
		{name: "invalid name", set: "a/b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, err := loader.LoadTemplateSet(tt.set)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplateSet() error: %v", err)
			}
			if ts.Page != tt.wantPage {
				t.Errorf("Page = %q, want %q", ts.Page, tt.wantPage)
			}
		})
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "secret")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(dir, "styles", "leak.css")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("error = %v, want ErrPathTraversal", err)
	}
}
