package hubmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParsePost - Front matter and defaults
// ---------------------------------------------------------------------------

func TestParsePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    *Post
		wantErr error
	}{
		{
			name: "full front matter",
			input: "---\n" +
				"title: Café Society\n" +
				"slug: cafe\n" +
				"excerpt: A short one\n" +
				"coverImage: /uploads/c.png\n" +
				"tags: [go, web]\n" +
				"public: true\n" +
				"draft: false\n" +
				"date: \"2024-03-15\"\n" +
				"author: Ana\n" +
				"---\n\n" +
				"# Body\n",
			want: &Post{
				Title:      "Café Society",
				Slug:       "cafe",
				Excerpt:    "A short one",
				CoverImage: "/uploads/c.png",
				Tags:       []string{"go", "web"},
				Public:     true,
				Date:       "2024-03-15",
				Author:     "Ana",
				Content:    "# Body\n",
			},
		},
		{
			name:  "defaults are private draft and slug from title",
			input: "---\ntitle: Café Society!\n---\nbody",
			want:  &Post{Title: "Café Society!", Slug: "cafe-society", Draft: true, Content: "body"},
		},
		{
			name:  "no front matter",
			input: "# Just markdown\n\ntext",
			want:  &Post{Draft: true, Content: "# Just markdown\n\ntext"},
		},
		{
			name:  "empty front matter block",
			input: "---\n---\nbody",
			want:  &Post{Draft: true, Content: "body"},
		},
		{
			name:  "unterminated block is body",
			input: "---\ntitle: x\nbody",
			want:  &Post{Draft: true, Content: "---\ntitle: x\nbody"},
		},
		{
			name:  "crlf front matter",
			input: "---\r\ntitle: Windows Post\r\n---\r\nbody",
			want:  &Post{Title: "Windows Post", Slug: "windows-post", Draft: true, Content: "body"},
		},
		{
			name:  "tags trimmed and deduplicated",
			input: "---\ntitle: Tags\ntags: [\" go \", go, \"\", web]\n---\nx",
			want:  &Post{Title: "Tags", Slug: "tags", Draft: true, Tags: []string{"go", "web"}, Content: "x"},
		},
		{
			name:    "unknown key rejected",
			input:   "---\ntitle: x\npublished: true\n---\nbody",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "malformed yaml",
			input:   "---\ntitle: [unclosed\n---\nbody",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePost([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePost() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePost() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePost() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPost_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewPost("Hello World")
	p.Tags = []string{"go"}
	p.Date = "auto"
	p.Content = "Body text here."

	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Errorf("Marshal() should open with a front matter delimiter, got %q", data)
	}

	got, err := ParsePost(data)
	if err != nil {
		t.Fatalf("ParsePost() error: %v", err)
	}
	// Marshal ends the body with a newline.
	p.Content += "\n"
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestPost_Validate - Field rules
// ---------------------------------------------------------------------------

func TestPost_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Post {
		return &Post{Title: "Hello", Slug: "hello", Content: "Long enough body."}
	}

	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantMsg string
	}{
		{name: "valid", mutate: func(p *Post) {}},
		{name: "short title", mutate: func(p *Post) { p.Title = "Hi" }, wantMsg: "title"},
		{name: "long title", mutate: func(p *Post) { p.Title = strings.Repeat("a", MaxTitleLength+1) }, wantMsg: "title"},
		{name: "title counts runes", mutate: func(p *Post) { p.Title = "été" }},
		{name: "short slug", mutate: func(p *Post) { p.Slug = "ab" }, wantMsg: "slug"},
		{name: "malformed slug", mutate: func(p *Post) { p.Slug = "Hello World" }, wantMsg: "slug"},
		{name: "short content", mutate: func(p *Post) { p.Content = "  tiny  " }, wantMsg: "content"},
		{name: "long excerpt", mutate: func(p *Post) { p.Excerpt = strings.Repeat("e", MaxExcerptLength+1) }, wantMsg: "excerpt"},
		{name: "https cover", mutate: func(p *Post) { p.CoverImage = "https://cdn.test/a.png" }},
		{name: "relative cover", mutate: func(p *Post) { p.CoverImage = "img/a.png" }},
		{name: "javascript cover", mutate: func(p *Post) { p.CoverImage = "javascript:alert(1)" }, wantMsg: "coverImage"},
		{name: "protocol relative cover", mutate: func(p *Post) { p.CoverImage = "//evil.test/a.png" }, wantMsg: "coverImage"},
		{name: "long author", mutate: func(p *Post) { p.Author = strings.Repeat("a", MaxAuthorLength+1) }, wantMsg: "author"},
		{name: "long tag", mutate: func(p *Post) { p.Tags = []string{strings.Repeat("t", MaxTagLength+1)} }, wantMsg: "tag"},
		{name: "stored date", mutate: func(p *Post) { p.Date = "2024-03-15" }},
		{name: "rfc3339 date", mutate: func(p *Post) { p.Date = "2024-03-15T10:00:00Z" }},
		{name: "auto date", mutate: func(p *Post) { p.Date = "auto:long" }},
		{name: "bad auto date", mutate: func(p *Post) { p.Date = "automatic" }, wantMsg: "date"},
		{name: "bad literal date", mutate: func(p *Post) { p.Date = "15/03/2024" }, wantMsg: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid()
			tt.mutate(p)
			err := p.Validate()

			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPost) {
				t.Fatalf("Validate() error = %v, want ErrInvalidPost", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestPost_ValidateReportsAll(t *testing.T) {
	t.Parallel()

	err := (&Post{}).Validate()
	if err == nil {
		t.Fatal("Validate() on zero post should fail")
	}
	for _, field := range []string{"title", "slug", "content"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPost_Summary - Excerpt fallback
// ---------------------------------------------------------------------------

func TestPost_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		post Post
		want string
	}{
		{name: "explicit excerpt", post: Post{Excerpt: "  Mine  ", Content: "Body"}, want: "Mine"},
		{name: "first paragraph", post: Post{Content: "# Title\n\nSome **bold** text.\n\nMore."}, want: "Some bold text."},
		{name: "no paragraph", post: Post{Content: "# Only a heading"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.post.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"Crème Brûlée: a recipe!", "creme-brulee-a-recipe"},
		{"  --Go  1.22--  ", "go-122"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewPost(t *testing.T) {
	t.Parallel()

	p := NewPost("My First Post")
	want := &Post{Title: "My First Post", Slug: "my-first-post", Draft: true}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("NewPost() mismatch (-want +got):\n%s", diff)
	}
}
