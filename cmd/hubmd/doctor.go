package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/hints"
)

// Doctor statuses, from best to worst.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"`
	Browser   browserInfo   `json:"browser"`
	Env       envInfo       `json:"environment"`
	Converter converterInfo `json:"converter"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// browserInfo holds Chrome/Chromium detection results.
type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds runtime environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// converterInfo reports whether the configured converter can be built.
type converterInfo struct {
	OK     bool   `json:"ok"`
	Engine string `json:"engine"`
	Style  string `json:"style"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = ready (warnings included), 1 = errors found, 2 = bad flag.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput, err := parseDoctorFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBrowser(result)
	checkEnvironment(result)
	checkConverter(result, env)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkBrowser locates Chrome the way the PDF exporter does.
// A missing browser only blocks export, so it is a warning.
func checkBrowser(result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			result.warn("Chrome/Chromium not found; export needs it (install Chrome or set ROD_BROWSER_BIN)")
			return
		}
	}

	if _, err := os.Stat(path); err != nil {
		result.warn("Chrome not found at %s", path)
		return
	}

	result.Browser.Found = true
	result.Browser.Path = path
	result.Browser.Sandbox = result.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err != nil {
		result.warn("could not get Chrome version: %v", err)
		return
	}
	result.Browser.Version = strings.TrimSpace(string(out))
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = detectContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warn("container/CI detected but ROD_NO_SANDBOX not set; set ROD_NO_SANDBOX=1")
	}
}

// detectContainer returns whether a container was detected and which
// signal gave it away.
func detectContainer() (bool, string) {
	if os.Getenv("HUBMD_CONTAINER") == "1" {
		return true, "HUBMD_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkConverter builds a converter from the default config and HUBMD_*
// variables, which validates the engine, style, template and date format.
func checkConverter(result *doctorResult, env *Environment) {
	cfg, err := loadConfig("", loadEnvConfig(), env)
	if err != nil {
		result.fail("config: %s", errorMessage(err))
		return
	}

	result.Converter.Engine = cfg.Render.Engine
	result.Converter.Style = cfg.CSS.Style
	if result.Converter.Style == "" {
		result.Converter.Style = "default"
	}

	conv, err := hubmd.NewConverter(converterOptions(cfg, 0)...)
	if err != nil {
		result.fail("converter: %s", errorMessage(err))
		return
	}
	_ = conv.Close()
	result.Converter.OK = true
}

// checkSystem verifies the temp directory used for PDF export is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "hubmd-doctor-write")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		result.fail("temp directory not writable: %s", tmpDir)
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "hubmd doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser (PDF export)")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Converter")
	if r.Converter.OK {
		fmt.Fprintf(w, "  [OK] Engine %s, style %s\n", r.Converter.Engine, r.Converter.Style)
	} else {
		fmt.Fprintln(w, "  [ERROR] Cannot be built")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, err := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", err)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
