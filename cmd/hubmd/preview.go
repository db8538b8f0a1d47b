package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	hubmd "github.com/alnah/go-hubmd"
)

// Preview server settings.
const (
	defaultAddr       = ":8080"
	maxPreviewBody    = 1 << 20 // 1 MiB of Markdown per POST /render
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// previewServer renders one post file on demand and turns posted Markdown
// into fragments for an editor's live preview.
type previewServer struct {
	conv     CLIConverter
	postPath string
	css      string
	verbose  bool
	log      io.Writer
	now      func() time.Time
}

// routes wires the preview endpoints. Other GET paths serve files next to
// the post so relative images resolve.
func (s *previewServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.Handle("GET /", http.FileServer(http.Dir(filepath.Dir(s.postPath))))
	return s.logRequests(mux)
}

// handlePage re-reads the post and serves the full page.
func (s *previewServer) handlePage(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(s.postPath) // #nosec G304 -- path given on the command line
	if err != nil {
		http.Error(w, fmt.Sprintf("%v: %v", ErrReadMarkdown, err), http.StatusInternalServerError)
		return
	}

	post, err := hubmd.ParsePost(content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	res, err := s.conv.Convert(r.Context(), hubmd.Input{Post: post, CSS: s.css})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(res.HTML)
}

// handleRender converts the Markdown request body to a fragment.
func (s *previewServer) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPreviewBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("markdown exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.conv.Convert(r.Context(), hubmd.Input{Markdown: string(body), Fragment: true})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, res.Fragment)
}

// statusFor maps conversion errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, hubmd.ErrEmptyMarkdown) ||
		errors.Is(err, hubmd.ErrInvalidDate) ||
		errors.Is(err, hubmd.ErrInvalidDateFormat) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests writes one line per request in verbose mode.
func (s *previewServer) logRequests(next http.Handler) http.Handler {
	if !s.verbose {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		fmt.Fprintf(s.log, "%s %s %d (%v)\n", r.Method, r.URL.Path, rec.status, s.now().Sub(start).Round(time.Millisecond))
	})
}

// runPreviewCmd serves a live preview until ctx is canceled.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeEngineFlags(&flags.engine, cfg)
	if flags.addr != "" {
		cfg.Preview.Addr = flags.addr
	}
	addr := cfg.Preview.Addr
	if addr == "" {
		addr = defaultAddr
	}

	if len(positional) == 0 {
		return fmt.Errorf("%w: preview needs a post file", ErrNoInput)
	}
	postPath := positional[0]
	if err := validateMarkdownExtension(postPath); err != nil {
		return err
	}
	if _, err := os.Stat(postPath); err != nil {
		return err
	}

	css, err := readCSS(flags.engine.css)
	if err != nil {
		return err
	}

	pool := env.NewPool(1, converterOptions(cfg, 0)...)
	defer func() { _ = pool.Close() }()
	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	s := &previewServer{
		conv:     conv,
		postPath: postPath,
		css:      css,
		verbose:  flags.common.verbose,
		log:      env.Stderr,
		now:      env.Now,
	}
	srv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Previewing %s at http://%s\n", postPath, ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down preview server: %w", err)
	}
	return nil
}
