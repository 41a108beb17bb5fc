package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelAlways sits above Error so run summaries survive any level filter
const LevelAlways = slog.Level(12)

var (
	current atomic.Pointer[slog.Logger]

	// file is the rotating log file opened by Initialize, if any
	fileMu sync.Mutex
	file   io.Closer
)

// Initialize installs the process logger. Console output goes to stderr so
// maps printed on stdout stay clean. Calling it again replaces the previous
// logger and closes its file.
func Initialize(config Config) error {
	level := parseLogLevel(config.Level)

	var handlers []slog.Handler
	if config.ConsoleEnabled {
		handlers = append(handlers, newHandler(os.Stderr, config.ConsoleFormat, level))
	}

	var rotating *lumberjack.Logger
	if config.FileEnabled {
		rotating = &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
		}
		handlers = append(handlers, newHandler(rotating, config.FileFormat, level))
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = newHandler(os.Stderr, "text", level)
	case 1:
		h = handlers[0]
	default:
		h = fanout(handlers)
	}

	prev := swapFile(rotating)
	current.Store(slog.New(h))
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Close flushes and closes the log file, if one is open. Logging after
// Close still works on the console.
func Close() error {
	if prev := swapFile(nil); prev != nil {
		return prev.Close()
	}
	return nil
}

func swapFile(next *lumberjack.Logger) io.Closer {
	fileMu.Lock()
	defer fileMu.Unlock()
	prev := file
	if next != nil {
		file = next
	} else {
		file = nil
	}
	return prev
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelAlways {
					a.Value = slog.StringValue("ALWAYS")
				}
			}
			return a
		},
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger carrying args on every record. Before Initialize it
// returns a logger that discards everything.
func With(args ...any) *slog.Logger {
	if l := current.Load(); l != nil {
		return l.With(args...)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func log(level slog.Level, msg string, args ...any) {
	if l := current.Load(); l != nil {
		l.Log(context.Background(), level, msg, args...)
	}
}

func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

func Warning(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

// Always logs regardless of the configured level
func Always(msg string, args ...any) {
	log(LevelAlways, msg, args...)
}

// fanout writes each record to every handler that accepts its level
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle keeps writing after a failing handler and reports every failure
func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
