//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives a context canceled on Ctrl+C, so batch exports
// and the preview server stop cleanly.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
