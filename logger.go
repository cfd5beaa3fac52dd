package codeshot

import (
	"log/slog"
	"sync/atomic"
)

// current holds the process-wide logger. It is read on every render, so it
// is an atomic pointer rather than a mutex-guarded variable.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent())
}

func silent() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SetLogger sets the logger used by codeshot and the packages built on it
// (gist, the bot, the HTTP server). Nothing is logged until it is called.
// Passing nil silences logging again. SetLogger may be called at any time
// from any goroutine.
//
// Levels:
//   - [slog.LevelDebug]: one line per render with syntax, size and cache counters
//   - [slog.LevelInfo]: lifecycle (server listening, bot polling)
//   - [slog.LevelWarn]: recoverable failures (poll errors, sweep errors)
//   - [slog.LevelError]: failed requests
//
// Example:
//
//	codeshot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent()
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}

// Component returns the current logger tagged with component=name.
// The result is a snapshot: a later SetLogger does not affect it.
func Component(name string) *slog.Logger {
	return Logger().With("component", name)
}
