package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "default style", styleName: DefaultStyleName, wantContain: ".post"},
		{name: "minimal style", styleName: "minimal", wantContain: "font-family"},
		{name: "nonexistent", styleName: "nonexistent-style-xyz", wantErr: ErrStyleNotFound},
		{name: "empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "path traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "backslash traversal", styleName: `..\secret`, wantErr: ErrInvalidAssetName},
		{name: "name with dot", styleName: "style.name", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default set has page template", func(t *testing.T) {
		t.Parallel()

		ts, err := loader.LoadTemplateSet(DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error: %v", err)
		}
		if ts.Name != DefaultTemplateSetName {
			t.Errorf("Name = %q, want %q", ts.Name, DefaultTemplateSetName)
		}
		for _, part := range []string{"{{.Body}}", "{{.Title}}", "range .Tags"} {
			if !strings.Contains(ts.Page, part) {
				t.Errorf("page template should contain %q", part)
			}
		}
	})

	t.Run("nonexistent set", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("nope")
		if !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	want := map[string]bool{"default": false, "minimal": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("StyleNames() = %v, missing %q", names, n)
		}
	}
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error: %v", err)
	}
	if _, err := LoadTemplateSet(DefaultTemplateSetName); err != nil {
		t.Errorf("LoadTemplateSet() error: %v", err)
	}
}
