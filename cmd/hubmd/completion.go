package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/dateutil"
)

// Shell is a shell completion scripts are generated for.
type Shell string

// Supported shells.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned for a shell without a generator.
var ErrUnsupportedShell = errors.New("unsupported shell")

// markdownGlob matches post files.
const markdownGlob = "*.md,*.markdown"

// flagType drives how a flag's value is completed.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagFloat
	flagEnum // fixed list of values
	flagFile // file matching a glob
	flagDir
)

// flagDef describes a flag for completion.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated; empty matches any file
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values, e.g. command or shell names
	FilePattern string   // positional file glob, empty when none
}

// completionMeta adds what a pflag definition cannot express.
type completionMeta struct {
	Values   func() []string
	FileGlob string
	IsFile   bool
	IsDir    bool
}

// flagCompletionMeta is keyed by long flag name. Flag names, shorthands and
// descriptions come from the command flag sets.
var flagCompletionMeta = map[string]completionMeta{
	"engine":          {Values: func() []string { return []string{hubmd.EngineMini, hubmd.EngineCommonMark} }},
	"highlight-style": {Values: styles.Names},
	"date-format":     {Values: func() []string { return slices.Sorted(maps.Keys(dateutil.DatePresets)) }},
	"page-size": {Values: func() []string {
		return []string{hubmd.PageSizeLetter, hubmd.PageSizeA4, hubmd.PageSizeLegal}
	}},
	"orientation": {Values: func() []string {
		return []string{hubmd.OrientationPortrait, hubmd.OrientationLandscape}
	}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},
	"css":    {FileGlob: "*.css"},

	"output":     {IsFile: true},
	"asset-path": {IsDir: true},
}

// extractFlags converts a flag set into completion definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var defs []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case meta.FileGlob != "" || meta.IsFile:
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}
		defs = append(defs, fd)
	})
	return defs
}

// getCommands returns the command registry, built from the same flag sets
// the commands parse with.
func getCommands() []commandDef {
	var doctorJSON bool
	cmds := []commandDef{
		{
			Name:        "render",
			Desc:        "Render posts to HTML",
			Flags:       extractFlags(renderFlagSet(&renderFlags{}, io.Discard)),
			FilePattern: markdownGlob,
		},
		{
			Name:        "export",
			Desc:        "Export posts to PDF",
			Flags:       extractFlags(exportFlagSet(&exportFlags{}, io.Discard)),
			FilePattern: markdownGlob,
		},
		{
			Name:        "preview",
			Desc:        "Serve a live preview of a post",
			Flags:       extractFlags(previewFlagSet(&previewFlags{}, io.Discard)),
			FilePattern: markdownGlob,
		},
		{
			Name:        "check",
			Desc:        "Validate post front matter and content",
			Flags:       extractFlags(checkFlagSet(&commonFlags{}, io.Discard)),
			FilePattern: markdownGlob,
		},
		{
			Name:  "new",
			Desc:  "Create a post skeleton",
			Flags: extractFlags(newFlagSetFor(&newFlags{}, io.Discard)),
		},
		{
			Name:  "doctor",
			Desc:  "Check the PDF export environment",
			Flags: extractFlags(doctorFlagSet(&doctorJSON, io.Discard)),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
	}

	var names []string
	for _, c := range cmds {
		if c.Name != "help" {
			names = append(names, c.Name)
		}
	}
	for i := range cmds {
		if cmds[i].Name == "help" {
			cmds[i].Args = names
		}
	}
	return cmds
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	case ShellPowerShell:
		return generatePowerShell(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hubmd completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a completion script for bash, zsh, fish or powershell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(hubmd completion bash)\"            # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(hubmd completion zsh)\"             # ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:        hubmd completion fish > ~/.config/fish/completions/hubmd.fish")
	fmt.Fprintln(w, "  PowerShell:  hubmd completion powershell | Out-String | Invoke-Expression")
}

// commandNames returns the registry's command names.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// globExts turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for hubmd\n")
	b.WriteString("_hubmd_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valued []string
		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
			if f.Type != flagBool {
				valued = append(valued, bashCase(f))
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, v := range valued {
				b.WriteString(v)
			}
			b.WriteString("        esac\n")
		}
		if len(words) > 0 {
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", strings.Join(globExts(c.FilePattern), "|"))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _hubmd_completions hubmd\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// bashCase completes the value following flag f.
func bashCase(f flagDef) string {
	pattern := "--" + f.Long
	if f.Short != "" {
		pattern += "|-" + f.Short
	}

	var reply string
	switch f.Type {
	case flagEnum:
		reply = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"${cur}\"))", strings.Join(f.Values, " "))
	case flagFile:
		reply = "COMPREPLY=($(compgen -f -- \"${cur}\"))"
		if f.FileGlob != "" {
			reply = fmt.Sprintf("COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))", strings.Join(globExts(f.FileGlob), "|"))
		}
	case flagDir:
		reply = "COMPREPLY=($(compgen -d -- \"${cur}\"))"
	default:
		reply = "COMPREPLY=()"
	}
	return fmt.Sprintf("        %s) %s; return ;;\n", pattern, reply)
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef hubmd\n\n")
	b.WriteString("_hubmd() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n            %s", zshArg(f))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", zshGlob(c.FilePattern))
		}
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_hubmd \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshArg renders one _arguments entry for f.
func zshArg(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = ":file:_files"
		if f.FileGlob != "" {
			action = fmt.Sprintf(":file:_files -g \"%s\"", zshGlob(f.FileGlob))
		}
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(glob string) string {
	return "*.(" + strings.Join(globExts(glob), "|") + ")"
}

// zshEscape escapes characters special inside a single-quoted _arguments
// description.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for hubmd\n\n")
	b.WriteString("function __fish_hubmd_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_hubmd_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c hubmd -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c hubmd -n __fish_hubmd_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_hubmd_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c hubmd -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			b.WriteString(line + fmt.Sprintf(" -d '%s'\n", fishEscape(f.Desc)))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c hubmd -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "complete -c hubmd -n %s -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# PowerShell completion for hubmd\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName hubmd -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		var words []string
		for _, f := range c.Flags {
			words = append(words, psQuote("--"+f.Long))
			if f.Short != "" {
				words = append(words, psQuote("-"+f.Short))
			}
		}
		for _, a := range c.Args {
			words = append(words, psQuote(a))
		}
		fmt.Fprintf(&b, "        %s = @(%s)\n", psQuote(c.Name), strings.Join(words, ", "))
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			quoted := make([]string, len(f.Values))
			for i, v := range f.Values {
				quoted[i] = psQuote(v)
			}
			fmt.Fprintf(&b, "        %s = @(%s)\n", psQuote("--"+f.Long), strings.Join(quoted, ", "))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($elements.Count -eq 1 -or ($elements.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $candidates = $commands.Keys | Sort-Object\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $prev = if ($wordToComplete -ne '') { $elements[-2] } else { $elements[-1] }\n")
	b.WriteString("        if ($values.ContainsKey($prev)) {\n")
	b.WriteString("            $candidates = $values[$prev]\n")
	b.WriteString("        } else {\n")
	b.WriteString("            $candidates = $commands[$elements[1]]\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
