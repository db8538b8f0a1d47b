package main

// Notes:
// - Scripts are checked for content markers only; running them needs the
//   target shells installed.
// - getCommands builds from the real flag sets, so a flag added to a command
//   shows up here without touching the completion code.

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion_SupportedShells - Script generation per shell
// ---------------------------------------------------------------------------

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_hubmd_completions",
				"complete -o filenames -F _hubmd_completions hubmd",
				"compgen",
				"--output",
				"--page-size|-p)",
				"*.@(md|markdown)",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef hubmd",
				"_arguments",
				"_describe 'command' commands",
				"{-o,--output}",
				`_files -g "*.(yaml|yml)"`,
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c hubmd",
				"__fish_hubmd_needs_command",
				"__fish_hubmd_using_command",
				"-l output",
				"-l json",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter",
				"-CommandName hubmd",
				"CompletionResult",
				"'--orientation' = @('portrait', 'landscape')",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s) error: %v", tt.shell, err)
			}
			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
			for _, cmd := range []string{"render", "export", "preview", "check", "new", "doctor"} {
				if !strings.Contains(out, cmd) {
					t.Errorf("%s script missing command %q", tt.shell, cmd)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	for _, shell := range []Shell{"", "tcsh", "BASH"} {
		t.Run(string(shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := GenerateCompletion(&buf, shell)
			if !errors.Is(err, ErrUnsupportedShell) {
				t.Fatalf("error = %v, want ErrUnsupportedShell", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes for unsupported shell", buf.Len())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunCompletion - Command entry point
// ---------------------------------------------------------------------------

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantStdout string
	}{
		{name: "no args prints usage", args: nil, wantStdout: "Usage: hubmd completion <shell>"},
		{name: "bash", args: []string{"bash"}, wantStdout: "_hubmd_completions"},
		{name: "fish", args: []string{"fish"}, wantStdout: "complete -c hubmd"},
		{name: "unknown shell", args: []string{"ksh"}, wantErr: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			err := runCompletion(tt.args, env)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrUnsupportedShell) {
					t.Errorf("error = %v, want it to wrap ErrUnsupportedShell", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q\ngot: %s", tt.wantStdout, stdout.String())
			}
		})
	}
}

func TestRunMain_Completion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if code := runMain([]string{"hubmd", "completion", "zsh"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.HasPrefix(stdout.String(), "#compdef hubmd") {
		t.Errorf("stdout should start with #compdef, got %q", stdout.String())
	}

	env, _, stderr := testEnv(nil)
	if code := runMain([]string{"hubmd", "completion", "ksh"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "unsupported shell") {
		t.Errorf("stderr missing cause, got %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Command and flag registry
// ---------------------------------------------------------------------------

func findCommand(t *testing.T, name string) commandDef {
	t.Helper()
	for _, c := range getCommands() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return commandDef{}
}

func findFlag(t *testing.T, c commandDef, long string) flagDef {
	t.Helper()
	for _, f := range c.Flags {
		if f.Long == long {
			return f
		}
	}
	t.Fatalf("command %q has no --%s", c.Name, long)
	return flagDef{}
}

func TestGetCommands_Names(t *testing.T) {
	t.Parallel()

	got := commandNames(getCommands())
	want := []string{"render", "export", "preview", "check", "new", "doctor", "version", "help", "completion"}
	if !slices.Equal(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestGetCommands_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command  string
		want     []string
		wantNone []string
	}{
		{command: "render", want: []string{"config", "engine", "output", "workers", "fragment", "highlight-style"}, wantNone: []string{"page-size"}},
		{command: "export", want: []string{"page-size", "orientation", "margin", "timeout", "html", "workers"}, wantNone: []string{"fragment"}},
		{command: "preview", want: []string{"addr", "engine", "style"}, wantNone: []string{"workers"}},
		{command: "check", want: []string{"config", "quiet", "verbose"}, wantNone: []string{"engine"}},
		{command: "new", want: []string{"output", "force"}, wantNone: []string{"config"}},
		{command: "doctor", want: []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			c := findCommand(t, tt.command)
			var names []string
			for _, f := range c.Flags {
				names = append(names, f.Long)
			}
			for _, want := range tt.want {
				if !slices.Contains(names, want) {
					t.Errorf("%s missing --%s (have %v)", tt.command, want, names)
				}
			}
			for _, none := range tt.wantNone {
				if slices.Contains(names, none) {
					t.Errorf("%s should not have --%s", tt.command, none)
				}
			}
		})
	}
}

func TestGetCommands_FlagTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command   string
		flag      string
		wantType  flagType
		wantShort string
		wantValue string
		wantGlob  string
	}{
		{command: "render", flag: "engine", wantType: flagEnum, wantShort: "e", wantValue: "commonmark"},
		{command: "render", flag: "highlight-style", wantType: flagEnum, wantValue: "monokai"},
		{command: "render", flag: "date-format", wantType: flagEnum, wantValue: "european"},
		{command: "export", flag: "page-size", wantType: flagEnum, wantShort: "p", wantValue: "a4"},
		{command: "export", flag: "orientation", wantType: flagEnum, wantValue: "landscape"},
		{command: "export", flag: "margin", wantType: flagFloat},
		{command: "export", flag: "workers", wantType: flagInt, wantShort: "w"},
		{command: "export", flag: "html", wantType: flagBool},
		{command: "render", flag: "config", wantType: flagFile, wantShort: "c", wantGlob: "*.yaml,*.yml"},
		{command: "preview", flag: "css", wantType: flagFile, wantGlob: "*.css"},
		{command: "new", flag: "output", wantType: flagFile, wantShort: "o"},
		{command: "render", flag: "asset-path", wantType: flagDir},
		{command: "preview", flag: "addr", wantType: flagString, wantShort: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()

			f := findFlag(t, findCommand(t, tt.command), tt.flag)
			if f.Type != tt.wantType {
				t.Errorf("type = %d, want %d", f.Type, tt.wantType)
			}
			if f.Short != tt.wantShort {
				t.Errorf("short = %q, want %q", f.Short, tt.wantShort)
			}
			if tt.wantValue != "" && !slices.Contains(f.Values, tt.wantValue) {
				t.Errorf("values %v missing %q", f.Values, tt.wantValue)
			}
			if f.FileGlob != tt.wantGlob {
				t.Errorf("glob = %q, want %q", f.FileGlob, tt.wantGlob)
			}
		})
	}
}

func TestGetCommands_PositionalArgs(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"render", "export", "preview", "check"} {
		if got := findCommand(t, name).FilePattern; got != markdownGlob {
			t.Errorf("%s file pattern = %q, want %q", name, got, markdownGlob)
		}
	}
	if got := findCommand(t, "new").FilePattern; got != "" {
		t.Errorf("new takes a title, not files; pattern = %q", got)
	}

	shells := findCommand(t, "completion").Args
	if !slices.Equal(shells, []string{"bash", "zsh", "fish", "powershell"}) {
		t.Errorf("completion args = %v", shells)
	}
	helpArgs := findCommand(t, "help").Args
	if !slices.Contains(helpArgs, "doctor") || slices.Contains(helpArgs, "help") {
		t.Errorf("help args = %v, want every command but help", helpArgs)
	}
}

func TestPrintCompletionUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printCompletionUsage(&buf)
	for _, want := range []string{"bash", "zsh", "fish", "powershell", "Installation:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}
}
