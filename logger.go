package meshgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with meshgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSegment adds a segment field to the logger.
func (l *Logger) WithSegment(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("segment", name),
	}
}

// WithSystem adds the shape of a system to the logger.
func (l *Logger) WithSystem(dim, top int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dim", dim, "top", top),
	}
}

// LogReconstruct logs a boundary reconstruction.
func (l *Logger) LogReconstruct(ctx context.Context, st ReconstructStats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reconstruction failed",
			"segments", st.Segments,
			"boundaries", st.Boundaries,
			"error", err,
		)
		return
	}
	if st.Unrecovered > 0 {
		l.WarnContext(ctx, "reconstruction completed with unrecovered boundaries",
			"segments", st.Segments,
			"boundaries", st.Boundaries,
			"unrecovered", st.Unrecovered,
		)
		return
	}
	l.InfoContext(ctx, "reconstruction completed",
		"segments", st.Segments,
		"points", st.Points,
		"triangles", st.Triangles,
		"interfaces", st.Interfaces,
		"recovered", st.Recovered,
	)
}

// LogBoundaryRecovery logs the outcome of recovering an empty boundary.
// source is the boundary the chain was borrowed from, or -1.
func (l *Logger) LogBoundaryRecovery(ctx context.Context, boundary, source int) {
	if source < 0 {
		l.WarnContext(ctx, "boundary not recovered",
			"boundary", boundary,
		)
		return
	}
	l.DebugContext(ctx, "boundary recovered",
		"boundary", boundary,
		"source", source,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot "+op+" completed",
		"name", name,
		"bytes", bytes,
	)
}
