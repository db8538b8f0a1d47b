package hubmd

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-hubmd/internal/dateutil"
	"github.com/alnah/go-hubmd/internal/markdown"
	"github.com/alnah/go-hubmd/internal/slug"
	"github.com/alnah/go-hubmd/internal/yamlutil"
)

// Post field limits.
const (
	MinTitleLength      = 3
	MaxTitleLength      = 200
	MinSlugLength       = 3
	MaxSlugLength       = 200
	MinContentLength    = 10
	MaxExcerptLength    = 500
	MaxCoverImageLength = 2048
	MaxAuthorLength     = 100
	MaxTagLength        = 50
)

// Post is a blog post: front-matter metadata plus a Markdown body.
type Post struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug,omitempty"`
	Excerpt    string   `yaml:"excerpt,omitempty"`
	CoverImage string   `yaml:"coverImage,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Public     bool     `yaml:"public"`
	Draft      bool     `yaml:"draft"`
	Date       string   `yaml:"date,omitempty"` // YYYY-MM-DD, RFC 3339, "auto" or "auto:FORMAT"
	Author     string   `yaml:"author,omitempty"`

	Content string `yaml:"-"`
}

// NewPost returns a post with the editor defaults: private and draft.
func NewPost(title string) *Post {
	return &Post{
		Title: title,
		Slug:  Slugify(title),
		Draft: true,
	}
}

// ParsePost reads a post file. A leading "---" YAML block, when present,
// holds the metadata; unknown keys are rejected. Keys left out keep the
// NewPost defaults, an empty slug is derived from the title, and tags are
// trimmed and deduplicated.
func ParsePost(data []byte) (*Post, error) {
	p := &Post{Draft: true}

	fm, body, ok := yamlutil.SplitFrontMatter(string(data))
	if ok && len(bytes.TrimSpace(fm)) > 0 {
		if err := yamlutil.UnmarshalStrict(fm, p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}

	p.Content = strings.TrimLeft(body, "\r\n")
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Tags = normalizeTags(p.Tags)
	return p, nil
}

// Marshal renders the post back to a file: front matter, a blank line,
// then the body.
func (p *Post) Marshal() ([]byte, error) {
	fm, err := yamlutil.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	if p.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Content)
		if !strings.HasSuffix(p.Content, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// Validate checks the post against the hub's field rules.
// Every violation is reported, joined into one ErrInvalidPost error.
func (p *Post) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if n := utf8.RuneCountInString(p.Title); n < MinTitleLength || n > MaxTitleLength {
		add("title must be %d to %d characters (got %d)", MinTitleLength, MaxTitleLength, n)
	}
	if n := utf8.RuneCountInString(p.Slug); n < MinSlugLength || n > MaxSlugLength {
		add("slug must be %d to %d characters (got %d)", MinSlugLength, MaxSlugLength, n)
	} else if !slug.Valid(p.Slug) {
		add("slug %q must be lower-case words joined by dashes", p.Slug)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(p.Content)); n < MinContentLength {
		add("content must be at least %d characters (got %d)", MinContentLength, n)
	}
	if n := utf8.RuneCountInString(p.Excerpt); n > MaxExcerptLength {
		add("excerpt exceeds %d characters (got %d)", MaxExcerptLength, n)
	}
	if n := len(p.CoverImage); n > MaxCoverImageLength {
		add("coverImage exceeds %d characters (got %d)", MaxCoverImageLength, n)
	} else if p.CoverImage != "" && !isSafeImageURL(p.CoverImage) {
		add("coverImage %q must be an http(s) URL or a path", p.CoverImage)
	}
	if n := utf8.RuneCountInString(p.Author); n > MaxAuthorLength {
		add("author exceeds %d characters (got %d)", MaxAuthorLength, n)
	}
	for _, tag := range p.Tags {
		if n := utf8.RuneCountInString(tag); n > MaxTagLength {
			add("tag %q exceeds %d characters", tag, MaxTagLength)
		}
	}
	if !isAcceptedDate(p.Date) {
		add("date %q must be YYYY-MM-DD, RFC 3339, auto or auto:FORMAT", p.Date)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidPost, strings.Join(problems, "; "))
}

// Summary returns the excerpt shown in listings: the explicit Excerpt when
// set, otherwise the first paragraph of the body as plain text.
func (p *Post) Summary() string {
	if e := strings.TrimSpace(p.Excerpt); e != "" {
		return e
	}
	return markdown.Excerpt(p.Content, markdown.DefaultExcerptLength)
}

// Slugify derives a URL slug from a title: lower-case, accents folded,
// punctuation dropped, words joined by single dashes.
func Slugify(title string) string {
	return slug.Make(title)
}

// normalizeTags trims tags, drops empty ones and keeps the first occurrence
// of each name.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// isSafeImageURL accepts http(s) URLs and scheme-less paths.
func isSafeImageURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "":
		return !strings.HasPrefix(s, "//")
	}
	return false
}

func isAcceptedDate(date string) bool {
	if date == "" {
		return true
	}
	if strings.HasPrefix(strings.ToLower(date), "auto") {
		_, err := dateutil.ResolveDate(date, time.Time{})
		return err == nil
	}
	_, err := dateutil.ParseStored(date)
	return err == nil
}
