package yamlutil_test

// Notes:
// - Marshal error branch: not tested, yaml.Marshal only fails on types such as
//   channels or funcs that front matter never holds.
// - TestInputSizeLimit mutates MaxInputSize and is not parallel.

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-hubmd/internal/yamlutil"
)

// header mirrors the shape of a post front matter block.
type header struct {
	Title  string   `yaml:"title"`
	Tags   []string `yaml:"tags,omitempty"`
	Public bool     `yaml:"public"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Known keys only
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		dest      any
		want      *header
		wantIs    error
		wantInMsg string
	}{
		{
			name: "known keys",
			data: "title: Hello\ntags: [go, web]\npublic: true\n",
			dest: &header{},
			want: &header{Title: "Hello", Tags: []string{"go", "web"}, Public: true},
		},
		{name: "unknown key", data: "title: x\nsubtitle: y\n", dest: &header{}, wantInMsg: "yamlutil:"},
		{name: "syntax error", data: "title: [unclosed", dest: &header{}, wantInMsg: "yamlutil:"},
		{name: "empty data", data: "", dest: &header{}, wantIs: yamlutil.ErrNilData},
		{name: "nil destination", data: "title: x", dest: nil, wantIs: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict([]byte(tt.data), tt.dest)
			switch {
			case tt.wantIs != nil:
				if !errors.Is(err, tt.wantIs) {
					t.Fatalf("error = %v, want %v", err, tt.wantIs)
				}
			case tt.wantInMsg != "":
				if err == nil || !strings.HasPrefix(err.Error(), tt.wantInMsg) {
					t.Fatalf("error = %v, want prefix %q", err, tt.wantInMsg)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(tt.want, tt.dest); diff != "" {
					t.Errorf("decoded mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Output is accepted back by UnmarshalStrict
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := header{Title: "Café 日本語", Tags: []string{"go"}}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{"Café 日本語", "public: false"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q\ngot: %s", want, data)
		}
	}

	var out header
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict() error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	orig := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = orig })
	yamlutil.MaxInputSize = 64

	atLimit := "title: " + strings.Repeat("a", 64-len("title: "))
	if err := yamlutil.UnmarshalStrict([]byte(atLimit), &header{}); err != nil {
		t.Errorf("input at limit: unexpected error %v", err)
	}

	err := yamlutil.UnmarshalStrict([]byte(atLimit+"a"), &header{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("error = %v, want ErrInputTooLarge", err)
	}
	if !strings.Contains(err.Error(), "65 bytes (max 64)") {
		t.Errorf("error = %q, want sizes in message", err)
	}
}

// ---------------------------------------------------------------------------
// TestSplitFrontMatter - Separates YAML header from post body
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		wantFM string
		wantBd string
		wantOK bool
	}{
		{
			name:   "front matter and body",
			doc:    "---\ntitle: Hi\n---\n# Body\n",
			wantFM: "title: Hi\n",
			wantBd: "# Body\n",
			wantOK: true,
		},
		{
			name:   "dots close the block",
			doc:    "---\ntitle: Hi\n...\nbody",
			wantFM: "title: Hi\n",
			wantBd: "body",
			wantOK: true,
		},
		{
			name:   "CRLF line endings",
			doc:    "---\r\ntitle: Hi\r\n---\r\nbody",
			wantFM: "title: Hi\n",
			wantBd: "body",
			wantOK: true,
		},
		{
			name:   "empty block",
			doc:    "---\n---\nbody",
			wantFM: "",
			wantBd: "body",
			wantOK: true,
		},
		{
			name:   "no front matter",
			doc:    "# Title\n---\n",
			wantBd: "# Title\n---\n",
		},
		{
			name:   "unterminated block",
			doc:    "---\ntitle: Hi\n# Body",
			wantBd: "---\ntitle: Hi\n# Body",
		},
		{
			name:   "delimiter only",
			doc:    "---",
			wantBd: "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm, body, ok := yamlutil.SplitFrontMatter(tt.doc)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if string(fm) != tt.wantFM {
				t.Errorf("frontMatter = %q, want %q", fm, tt.wantFM)
			}
			if body != tt.wantBd {
				t.Errorf("body = %q, want %q", body, tt.wantBd)
			}
		})
	}
}
