// Package assets provides the CSS styles and page templates used to present
// rendered posts.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}/
//	        └── page.html
//
// A custom directory may override a single style or template set; anything
// it does not provide is served from the embedded assets.
//
// # Security
//
// Asset names are validated so they cannot carry path separators or dots.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
