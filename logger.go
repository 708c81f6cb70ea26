package ggedit

import (
	"log/slog"

	"github.com/gogpu/ggedit/internal/logx"
)

// SetLogger configures the logger for ggedit and all its sub-packages.
// By default, ggedit produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by ggedit:
//   - [slog.LevelDebug]: gesture transitions, decoded images, cache hits
//   - [slog.LevelInfo]: layers added or deleted, exports, background removal
//   - [slog.LevelWarn]: fallbacks (unknown color, missing font family)
//
// Example:
//
//	ggedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by ggedit.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.Logger()
}
