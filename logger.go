package columndb

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with columndb-specific helpers, giving the
// store structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
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

// WithColumn adds a column name field to the logger.
func (l *Logger) WithColumn(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", name),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(path string, columns, rows int, err error) {
	if err != nil {
		l.Error("save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("database saved",
			"path", path,
			"columns", columns,
			"rows", rows,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(path string, columns, rows int, err error) {
	if err != nil {
		l.Error("load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("database loaded",
			"path", path,
			"columns", columns,
			"rows", rows,
		)
	}
}

// LogAddColumn logs a schema mutation.
func (l *Logger) LogAddColumn(name string, dataType string, err error) {
	if err != nil {
		l.Error("add column failed",
			"column", name,
			"type", dataType,
			"error", err,
		)
	} else {
		l.Debug("column added",
			"column", name,
			"type", dataType,
		)
	}
}
