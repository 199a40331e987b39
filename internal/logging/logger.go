// Package logging configures log/slog for the server and the CLI.
//
// Request handlers log through FromContext so every entry carries chi's
// request id; a directory load started by a request inherits it, which ties
// the load's own entries (load_id, origin, kept, dropped) to the request.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup installs the default logger on stderr, leaving stdout to command
// output such as `kosherdir list`.
//
// level is debug, info, warn or error (default info); format is text or json
// (default text).
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New builds a logger writing to w. Debug loggers also record the source
// location. Durations are written in milliseconds.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: durationMillis,
	}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// durationMillis renders time.Duration attributes as integer milliseconds so
// text and json output agree.
func durationMillis(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.Int64(a.Key, a.Value.Duration().Milliseconds())
	}
	return a
}

// FromContext returns the default logger, with request_id attached when ctx
// comes from a request handled behind chi's RequestID middleware.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	return logger
}

// WithFields is FromContext plus extra key/value pairs:
//
//	logger := logging.WithFields(ctx, "load_id", id, "origin", origin)
//	logger.Info("load started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}

// Since is a convenience for the duration_ms field.
func Since(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
