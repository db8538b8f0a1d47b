package markdown

import "strings"

// Options tunes rendering. The zero value gives the default dialect.
type Options struct {
	// EscapeText escapes &, < and > in block text and inline code before
	// inline formatting. Off by default: output is treated as trusted
	// author HTML and only fenced code is escaped.
	EscapeText bool
}

// Renderer renders Markdown with fixed options. It holds no mutable state
// and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render converts markdown to HTML with default options.
// It never fails; malformed markup degrades to literal text.
func Render(markdown string) string {
	return New(Options{}).Render(markdown)
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) string {
	markdown = stripReserved(markdown)
	if markdown == "" {
		return ""
	}

	text, code := extractFences(markdown)

	inline := func(s string) string {
		return formatInline(s, r.opts.EscapeText)
	}

	var out []string
	state := ContainerNone
	for _, raw := range splitLines(text) {
		var frags []string
		state, frags = Step(state, Classify(raw), inline)
		out = append(out, frags...)
	}
	out = append(out, Finish(state)...)

	return code.restore(assemble(out))
}

// reservedRunes are the placeholder characters used during rendering.
const reservedRunes = inlineStart + inlineEnd + codeStart + codeEnd

// stripReserved removes placeholder characters from author input so they
// cannot be mistaken for extracted code or inline HTML.
func stripReserved(s string) string {
	if !strings.ContainsAny(s, reservedRunes) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedRunes, r) {
			return -1
		}
		return r
	}, s)
}

// assemble joins fragments with newlines, keeps at most one blank line
// between fragments and drops blank lines at both ends.
func assemble(frags []string) string {
	var b strings.Builder
	pendingBlank := false
	wrote := false
	for _, f := range frags {
		if f == "" {
			pendingBlank = wrote
			continue
		}
		if wrote {
			b.WriteByte('\n')
			if pendingBlank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(f)
		wrote = true
		pendingBlank = false
	}
	return b.String()
}
