package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	inner *slog.Logger
}

// Init installs the process-wide handler. JSON in production, text otherwise.
func Init(isProd bool, level string) {
	InitWriter(os.Stdout, isProd, level)
}

func InitWriter(w io.Writer, isProd bool, level string) {
	options := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if isProd {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	l.inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}

// Slog exposes the underlying logger for libraries that take a *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.inner
}
