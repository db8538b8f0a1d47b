// Package markdown renders the hub's Markdown dialect to HTML.
//
// Rendering runs in two stages with no shared state:
//
//  1. Block segmentation: fenced code is extracted first, then the remaining
//     text is scanned line by line. Each line is classified (heading,
//     blockquote line, list item, blank, paragraph) and fed to a single-slot
//     container state machine that opens and closes <blockquote>, <ul> and
//     <ol> elements.
//  2. Inline formatting: the text of every non-code block goes through an
//     ordered sequence of substitutions (code, links, images, bold, italic,
//     strikethrough, line breaks).
//
// The dialect is deliberately small. It is not CommonMark, containers never
// nest (a list inside a blockquote is not possible), and only fenced code is
// HTML-escaped. Prose and inline code pass through as written unless
// Options.EscapeText is set, so output from untrusted sources must be
// sanitized by the caller.
//
// The Private Use Area characters U+E000 to U+E003 mark extracted spans
// while rendering and are removed from the input.
//
// Render is pure and safe for concurrent use.
package markdown
