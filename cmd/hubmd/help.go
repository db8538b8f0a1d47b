package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render posts to HTML")
	fmt.Fprintln(w, "  export     Export posts to PDF")
	fmt.Fprintln(w, "  preview    Serve a live preview of a post")
	fmt.Fprintln(w, "  check      Validate post front matter and content")
	fmt.Fprintln(w, "  new        Create a post skeleton")
	fmt.Fprintln(w, "  doctor     Check the PDF export environment")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'hubmd help <command>' for details on a specific command.")
}

// printEngineFlags prints the converter flags shared by several commands.
func printEngineFlags(w io.Writer) {
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <s>          Markdown engine: mini (default), commonmark")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style, e.g. github, monokai")
	fmt.Fprintln(w, "      --escape              Escape raw HTML in prose (mini engine)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -s, --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Override embedded styles and templates")
	fmt.Fprintln(w, "      --site-title <s>      Hub title in page headers")
	fmt.Fprintln(w, "      --author <s>          Author for posts that name none")
	fmt.Fprintln(w, "      --date-format <s>     Date display: iso, european, us, long, or tokens")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w)
}

// printCommonFlags prints the flags every converting command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render posts to HTML pages or fragments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Post file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin input: stdout)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -f, --fragment            Write the bare fragment, no page wrapper")
	fmt.Fprintln(w)
	printEngineFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  hubmd render post.md")
	fmt.Fprintln(w, "  hubmd render ./posts/ -o ./public/")
	fmt.Fprintln(w, "  echo '# Hi' | hubmd render - --fragment")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export posts to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Post file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF timeout per post (default 30s)")
	fmt.Fprintln(w, "      --html                Also write the HTML page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	printEngineFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (Docker/CI)")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd preview <post> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a live preview. The post is re-read on every request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /          Rendered post page")
	fmt.Fprintln(w, "  POST /render    Markdown request body, HTML fragment response")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w)
	printEngineFlags(w)
	printCommonFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd check <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate front matter and content of post files or directories.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd new <title> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a draft post with front matter derived from the title.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Post file or directory (default: <slug>.md)")
	fmt.Fprintln(w, "      --force               Overwrite an existing file")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, container and temp directory setup for PDF export.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	usage := map[string]func(io.Writer){
		"render":     printRenderUsage,
		"export":     printExportUsage,
		"preview":    printPreviewUsage,
		"check":      printCheckUsage,
		"new":        printNewUsage,
		"doctor":     printDoctorUsage,
		"completion": printCompletionUsage,
	}
	printFn, ok := usage[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	printFn(env.Stdout)
	return nil
}
