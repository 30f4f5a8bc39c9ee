package obsview

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with obsview-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDataset adds a dataset name field to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// LogStage logs the outcome of one filtering stage.
func (l *Logger) LogStage(stage Stage, in, out int, elapsed time.Duration) {
	l.Debug("stage completed",
		"stage", stage.String(),
		"in", in,
		"out", out,
		"elapsed", elapsed,
	)
}

// LogEmptyResult logs that a stage removed every observation.
func (l *Logger) LogEmptyResult(w *EmptyResultWarning, in int) {
	l.Warn("subset is empty",
		"stage", w.Stage.String(),
		"in", in,
	)
}

// LogSubset logs a completed ComputeSubset call.
func (l *Logger) LogSubset(total, kept int, err error) {
	if err != nil {
		l.Error("subset failed",
			"observations", total,
			"error", err,
		)
	} else {
		l.Debug("subset completed",
			"observations", total,
			"kept", kept,
		)
	}
}

// LogLoad logs a dataset load. The blob name comes from WithDataset.
func (l *Logger) LogLoad(ctx context.Context, observations, groups int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"observations", observations,
			"groups", groups,
		)
	}
}
