package main

import (
	"io"
	"os"
	"time"

	hubmd "github.com/alnah/go-hubmd"
	"github.com/alnah/go-hubmd/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and converter pool creation.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // Used when no --config is given
	NewPool func(size int, opts ...hubmd.Option) Pool
}

// DefaultEnv returns the production environment backed by real converters.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
}
