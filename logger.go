package embedix

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with embedix-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds the index name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(term string, id uint64, err error) {
	if err != nil {
		l.Error("insert failed",
			"term", term,
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"term", term,
			"id", id,
		)
	}
}

// LogCompile logs an ingestion run.
func (l *Logger) LogCompile(source string, lines int64, err error) {
	if err != nil {
		l.Error("compile failed",
			"source", source,
			"lines", lines,
			"error", err,
		)
	} else {
		l.Info("compile completed",
			"source", source,
			"lines", lines,
		)
	}
}
