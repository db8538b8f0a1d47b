package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewritableAttrs lists the attribute holding a path for each element the
// engines emit with a URL.
var rewritableAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths converts relative image and link paths in a post to
// absolute file:// URLs, so a page loaded from a temp file (PDF export)
// still finds images stored next to the post.
// If sourceDir is empty, returns the HTML unchanged.
//
// URLs, anchors, absolute paths and paths escaping sourceDir are kept as is.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		attr, ok := rewritableAttrs[n.DataAtom]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != attr {
				continue
			}
			if abs, ok := ResolveLocalPath(n.Attr[i].Val, absSourceDir); ok {
				n.Attr[i].Val = pathToFileURL(abs)
			}
		}
	})

	return renderHTML(doc, isFragment)
}

// ResolveLocalPath joins a relative path onto dir and reports whether the
// result is a local file path that stays inside dir.
func ResolveLocalPath(p, dir string) (string, bool) {
	if !isRelativePath(p) {
		return "", false
	}
	abs := filepath.Join(dir, p)
	if !isPathUnderDir(abs, dir) {
		return "", false
	}
	return abs, true
}

// walk calls fn for every element node below n, depth first.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(p), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath) + string(filepath.Separator)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath, cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
