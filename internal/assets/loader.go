package assets

// TemplateSet holds the templates used to wrap a post fragment.
type TemplateSet struct {
	Name string // Identifier (name or directory path)
	Page string // Standalone page template (html/template syntax)
}

const (
	// DefaultTemplateSetName is the name of the built-in template set.
	DefaultTemplateSetName = "default"

	// DefaultStyleName is the name of the built-in CSS style.
	DefaultStyleName = "default"

	// pageTemplateFile is the file every template set directory must contain.
	pageTemplateFile = "page.html"
)

// AssetLoader defines the contract for loading CSS styles and page templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the template set stored under templates/{name}/.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
