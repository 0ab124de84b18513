// SPDX-License-Identifier: MIT

package store

import (
	"log/slog"
	"time"
)

// Option configures Open.
type Option func(*Options)

// Options holds the resolved Open configuration.
type Options struct {
	// LockTimeout bounds how long Open waits for another process to release
	// the database lock file.
	LockTimeout time.Duration

	// Logger receives save/load diagnostics.
	Logger *slog.Logger
}

// DefaultOptions returns a 5s lock timeout and a discarding logger.
func DefaultOptions() Options {
	return Options{
		LockTimeout: 5 * time.Second,
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// WithLockTimeout sets the lock wait. Panics if d < 0; zero means try once.
func WithLockTimeout(d time.Duration) Option {
	if d < 0 {
		panic("store: WithLockTimeout(d < 0)")
	}
	return func(o *Options) { o.LockTimeout = d }
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
