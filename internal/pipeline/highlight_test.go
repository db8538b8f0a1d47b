package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewHighlighter - Style lookup
// ---------------------------------------------------------------------------

func TestNewHighlighter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   string
		wantErr error
	}{
		{name: "empty selects default", style: ""},
		{name: "known style", style: "monokai"},
		{name: "case insensitive", style: "GitHub"},
		{name: "unknown style", style: "no-such-style", wantErr: ErrUnknownHighlightStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := NewHighlighter(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h == nil {
				t.Fatal("NewHighlighter() returned nil")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHighlighter_Highlight - Code block rewriting
// ---------------------------------------------------------------------------

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter("")
	if err != nil {
		t.Fatalf("NewHighlighter() error: %v", err)
	}

	tests := []struct {
		name         string
		fragment     string
		wantContains []string
		wantSame     bool
	}{
		{
			name:         "known language",
			fragment:     `<pre><code class="language-go">x := 1</code></pre>`,
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "escaped body is decoded before tokenizing",
			fragment:     `<pre><code class="language-html">&lt;b&gt;</code></pre>`,
			wantContains: []string{`class="chroma"`, "&lt;"},
		},
		{
			name:     "unknown language unchanged",
			fragment: `<p>a</p><pre><code class="language-nosuchlang">x</code></pre>`,
			wantSame: true,
		},
		{
			name:     "no code blocks unchanged",
			fragment: "<p>hello</p>",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := h.Highlight(context.Background(), tt.fragment)
			if tt.wantSame {
				if got != tt.fragment {
					t.Errorf("Highlight() = %q, want unchanged", got)
				}
				return
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestHighlighter_CanceledContext(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter("")
	if err != nil {
		t.Fatalf("NewHighlighter() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := `<pre><code class="language-go">x := 1</code></pre>`
	if got := h.Highlight(ctx, in); got != in {
		t.Errorf("Highlight() with canceled context = %q, want unchanged", got)
	}
}

func TestHighlighter_CSS(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter("monokai")
	if err != nil {
		t.Fatalf("NewHighlighter() error: %v", err)
	}
	css := h.CSS()
	if !strings.Contains(css, ".chroma") {
		t.Errorf("CSS() missing .chroma selector, got %q", css)
	}
}
