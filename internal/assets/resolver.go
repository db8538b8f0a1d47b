package assets

import "errors"

// AssetResolver serves assets from a custom directory when one is configured,
// falling back to the embedded assets for anything the directory lacks.
type AssetResolver struct {
	custom   AssetLoader // nil when no custom path is configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath yields
// a resolver over embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if !isNotFoundError(err) {
			return css, err
		}
	}
	return r.embedded.LoadStyle(name)
}

// LoadTemplateSet loads a template set, custom directory first.
// An incomplete custom set is an error, not a reason to fall back.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom != nil {
		ts, err := r.custom.LoadTemplateSet(name)
		if !isNotFoundError(err) {
			return ts, err
		}
	}
	return r.embedded.LoadTemplateSet(name)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
