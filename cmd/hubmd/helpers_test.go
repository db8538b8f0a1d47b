package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/config"
)

// mockConverter records inputs and returns canned outputs.
type mockConverter struct {
	mu     sync.Mutex
	calls  []hubmd.Input
	err    error
	result *hubmd.ConvertResult
}

func (m *mockConverter) Convert(_ context.Context, in hubmd.Input) (*hubmd.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &hubmd.ConvertResult{
		Fragment: "<p>fragment</p>",
		HTML:     []byte("<html>page</html>"),
		PDF:      []byte("%PDF-mock"),
	}, nil
}

func (m *mockConverter) getCalls() []hubmd.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]hubmd.Input(nil), m.calls...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	released int
	closed   bool
}

func (p *mockPool) Acquire(context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv returns an environment writing to buffers, with pools backed by
// conv. A nil conv uses real converters.
func testEnv(conv CLIConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
		Stderr:  &stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
	if conv != nil {
		env.NewPool = func(size int, _ ...hubmd.Option) Pool {
			return &mockPool{conv: conv, size: size}
		}
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map relative paths to content.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}

// validPost is a post that passes Post.Validate.
const validPost = `---
title: Hello World
tags: [go, web]
date: "2025-03-14"
---
This is the body of the post.
`
