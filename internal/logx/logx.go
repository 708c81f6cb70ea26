// Package logx holds the logger shared by ggedit and its sub-packages.
//
// The root package exposes it as ggedit.SetLogger and ggedit.Logger; the
// sub-packages cannot import the root package, so they read it from here.
package logx

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically so that Set can
// race with logging from the background-removal goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// Set installs l as the logger. A nil logger restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// PrintfLogger adapts the logger to Printf-style consumers such as the
// go-text/typesetting font scanner. Messages are logged at debug level.
type PrintfLogger struct{}

// Printf implements the fontscan.Logger interface.
func (PrintfLogger) Printf(format string, args ...interface{}) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}
