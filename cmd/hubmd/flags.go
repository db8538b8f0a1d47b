package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-hubmd/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds flags that configure the converter.
// Shared by render, export and preview.
type engineFlags struct {
	engine         string
	highlight      bool
	highlightStyle string
	escape         bool
	style          string
	css            string // Extra CSS file appended after the style
	assetPath      string
	siteTitle      string
	author         string
	dateFormat     string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	engine   engineFlags
	output   string
	workers  int
	fragment bool
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common  commonFlags
	engine  engineFlags
	page    pageFlags
	output  string
	workers int
	timeout string
	html    bool // Also write the HTML page next to the PDF
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common commonFlags
	engine engineFlags
	addr   string
}

// newFlags holds all flags for the new command.
type newFlags struct {
	output string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addEngineFlags adds converter flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: mini, commonmark")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style (implies --highlight)")
	fs.BoolVar(&f.escape, "escape", false, "escape raw HTML in prose (mini engine)")
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles and templates")
	fs.StringVar(&f.siteTitle, "site-title", "", "hub title shown in page headers")
	fs.StringVar(&f.author, "author", "", "author for posts that name none")
	fs.StringVar(&f.dateFormat, "date-format", "", "date display: iso, european, us, long or tokens")
}

// addPageFlags adds PDF page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting and
// prints its usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args. pflag prints usage itself on --help and
// returns flag.ErrHelp; other parse errors are wrapped in ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// renderFlagSet registers the render command flags into f.
func renderFlagSet(f *renderFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("render", w, printRenderUsage)
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.fragment, "fragment", "f", false, "write the bare fragment, no page wrapper")
	return fs
}

// exportFlagSet registers the export command flags into f.
func exportFlagSet(f *exportFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("export", w, printExportUsage)
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	addPageFlags(fs, &f.page)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF timeout per post (e.g. 30s, 2m)")
	fs.BoolVar(&f.html, "html", false, "also write the HTML page")
	return fs
}

// previewFlagSet registers the preview command flags into f.
func previewFlagSet(f *previewFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("preview", w, printPreviewUsage)
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	return fs
}

// checkFlagSet registers the check command flags into f.
func checkFlagSet(f *commonFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("check", w, printCheckUsage)
	addCommonFlags(fs, f)
	return fs
}

// newFlagSetFor registers the new command flags into f.
func newFlagSetFor(f *newFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("new", w, printNewUsage)
	fs.StringVarP(&f.output, "output", "o", "", "post file or directory (default: <slug>.md)")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")
	return fs
}

// doctorFlagSet registers the doctor command flags.
func doctorFlagSet(jsonOutput *bool, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.BoolVar(jsonOutput, "json", false, "print the report as JSON")
	return fs
}

// parseRenderFlags parses arguments for the render command.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	positional, err := parseFlagSet(renderFlagSet(f, w), args)
	return f, positional, err
}

// parseExportFlags parses arguments for the export command.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, []string, error) {
	f := &exportFlags{}
	positional, err := parseFlagSet(exportFlagSet(f, w), args)
	return f, positional, err
}

// parsePreviewFlags parses arguments for the preview command.
func parsePreviewFlags(args []string, w io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	positional, err := parseFlagSet(previewFlagSet(f, w), args)
	return f, positional, err
}

// parseCheckFlags parses arguments for the check command.
func parseCheckFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	positional, err := parseFlagSet(checkFlagSet(f, w), args)
	return f, positional, err
}

// parseNewFlags parses arguments for the new command.
func parseNewFlags(args []string, w io.Writer) (*newFlags, []string, error) {
	f := &newFlags{}
	positional, err := parseFlagSet(newFlagSetFor(f, w), args)
	return f, positional, err
}

// parseDoctorFlags parses arguments for the doctor command.
func parseDoctorFlags(args []string, w io.Writer) (jsonOutput bool, err error) {
	_, err = parseFlagSet(doctorFlagSet(&jsonOutput, w), args)
	return jsonOutput, err
}

// mergeEngineFlags applies explicitly set flags over the config (CLI wins).
func mergeEngineFlags(f *engineFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Render.Engine = f.engine
	}
	if f.highlight {
		cfg.Render.Highlight = true
	}
	if f.highlightStyle != "" {
		cfg.Render.Highlight = true
		cfg.Render.HighlightStyle = f.highlightStyle
	}
	if f.escape {
		cfg.Render.EscapeText = true
	}
	if f.style != "" {
		cfg.CSS.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.siteTitle != "" {
		cfg.Site.Title = f.siteTitle
	}
	if f.author != "" {
		cfg.Site.Author = f.author
	}
	if f.dateFormat != "" {
		cfg.Site.DateFormat = f.dateFormat
	}
}

// mergePageFlags applies explicitly set page flags over the config.
func mergePageFlags(f *pageFlags, cfg *config.Config) {
	if f.size != "" {
		cfg.Page.Size = f.size
	}
	if f.orientation != "" {
		cfg.Page.Orientation = f.orientation
	}
	if f.margin != 0 {
		cfg.Page.Margin = f.margin
	}
}
