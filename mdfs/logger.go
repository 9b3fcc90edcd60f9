package mdfs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with run-specific helpers so that every run logs
// the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithConfig adds the run parameters to the logger.
func (l *Logger) WithConfig(cfg Config) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"dimension", cfg.Dimension,
			"divisions", cfg.Divisions,
			"discretizations", cfg.Discretizations,
		),
	}
}

// LogRunStart logs the start of a run.
func (l *Logger) LogRunStart(ctx context.Context, variables, objects, tuples, lanes int, backend string) {
	l.InfoContext(ctx, "mdfs run started",
		"variables", variables,
		"objects", objects,
		"tuples", tuples,
		"lanes", lanes,
		"backend", backend,
	)
}

// LogProgress logs how many tuples have been processed.
func (l *Logger) LogProgress(ctx context.Context, done, skipped, total int) {
	l.InfoContext(ctx, "mdfs progress",
		"done", done,
		"skipped", skipped,
		"total", total,
	)
}

// LogRunDone logs the end of a run.
func (l *Logger) LogRunDone(ctx context.Context, tuples, skipped int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "mdfs run failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "mdfs run completed",
		"tuples", tuples,
		"skipped", skipped,
		"elapsed", elapsed,
	)
}

// progress throttles progress log lines to one per interval.
type progress struct {
	limiter *rate.Limiter
}

func newProgress(interval time.Duration) *progress {
	if interval <= 0 {
		return &progress{}
	}
	lim := rate.NewLimiter(rate.Every(interval), 1)
	lim.Allow() // the first line comes after one interval
	return &progress{limiter: lim}
}

func (p *progress) due() bool {
	return p.limiter != nil && p.limiter.Allow()
}
