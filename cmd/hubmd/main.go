package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/assets"
	"github.com/alnah/go-hubmd/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] to its command and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRenderCmd(ctx, rest, env)
	case "export":
		err = runExportCmd(ctx, rest, env)
	case "preview":
		err = runPreviewCmd(ctx, rest, env)
	case "check":
		err = runCheckCmd(rest, env)
	case "new":
		err = runNewCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "hubmd %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %s\n", errorMessage(err))
		if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrUsage) {
			fmt.Fprintln(env.Stderr)
			printUsage(env.Stderr)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// errorMessage appends an actionable hint to err's message when one applies.
func errorMessage(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, hubmd.ErrBrowserConnect):
		return msg + hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return msg + hints.ForTimeout()
	case errors.Is(err, hubmd.ErrStyleNotFound):
		return msg + hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, hubmd.ErrUnknownHighlightStyle):
		return msg + hints.ForHighlightStyle()
	case errors.Is(err, hubmd.ErrFrontMatter):
		return msg + hints.ForFrontMatter()
	case errors.Is(err, syscall.EADDRINUSE):
		return msg + hints.ForAddrInUse()
	}
	return msg
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
