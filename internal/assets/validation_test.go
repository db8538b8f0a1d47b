package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "default"},
		{name: "hyphen", input: "my-style"},
		{name: "underscore", input: "my_style"},
		{name: "mixed case and digits", input: "Style2"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "a/b", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: `a\b`, wantErr: ErrInvalidAssetName},
		{name: "dot", input: "a.css", wantErr: ErrInvalidAssetName},
		{name: "traversal", input: "..", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidateAssetName(%q) = %v, want nil", tt.input, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
