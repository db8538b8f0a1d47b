// Package hubmd renders blog posts written in the hub's Markdown dialect
// to HTML, and optionally to PDF using headless Chrome.
//
// # Quick Start
//
// For a bare fragment, call Render:
//
//	html := hubmd.Render("# Hello\n\nSome **bold** text")
//
// For full pages, create a converter and close it when done:
//
//	conv, err := hubmd.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	post, err := hubmd.ParsePost(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, hubmd.Input{Post: post})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("post.html", result.HTML, 0644)
//
// # Dialect
//
// The default engine is line based: headings (# to ####), unordered and
// ordered lists, block quotes, horizontal rules, fenced code blocks and
// paragraphs, plus inline images, links, bold, italic, strikethrough and
// inline code. Containers do not nest. Anything else is literal text.
// WithEngine(EngineCommonMark) switches to Goldmark for CommonMark input.
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line endings, BOM)
//  2. Markdown to HTML fragment (mini engine or Goldmark)
//  3. Syntax highlighting of fenced code via Chroma (WithHighlight)
//  4. Page wrapping from an html/template, CSS injection
//  5. PDF rendering via headless Chrome (Input.PDF)
//
// # Posts
//
// A post file starts with an optional YAML front matter block:
//
//	---
//	title: Hello World
//	tags: [go, web]
//	date: auto
//	---
//	Body in Markdown.
//
// Missing slugs are derived from the title with Slugify. Post.Validate
// checks the hub's field limits.
//
// # Parallel Processing
//
// For batch PDF export, use ConverterPool to manage several browsers:
//
//	pool := hubmd.NewConverterPool(hubmd.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Assets
//
// WithAssetPath overrides the embedded styles and page template:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── default/
//	        └── page.html
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). For containers and CI,
// set ROD_NO_SANDBOX=1; use ROD_BROWSER_BIN to point at a custom binary.
package hubmd
