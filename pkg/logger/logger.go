package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds logger configuration.
type Config struct {
	Level  string
	Format string // kept for call-site compatibility; the tint handler is always used
	Output io.Writer
}

// Logger is a structured, component-scoped logger backed by slog and a
// tint console handler.
type Logger struct {
	*slog.Logger
}

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	handler := tint.NewHandler(output, &tint.Options{
		Level:      parseLevel(cfg.Level),
		TimeFormat: time.Kitchen,
		NoColor:    true,
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithComponent returns a child logger tagging every record with a
// "component" attribute.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...Field) { l.Logger.Debug(msg, toArgs(fields)...) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...Field) { l.Logger.Info(msg, toArgs(fields)...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...Field) { l.Logger.Warn(msg, toArgs(fields)...) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...Field) { l.Logger.Error(msg, toArgs(fields)...) }

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
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

// Field constructors, kept so call sites across the gateway don't need to
// know they're building slog args underneath.

func String(key, val string) Field     { return Field{Key: key, Value: val} }
func Int(key string, val int) Field    { return Field{Key: key, Value: val} }
func Int64(key string, val int64) Field { return Field{Key: key, Value: val} }
func Uint64(key string, val uint64) Field { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field  { return Field{Key: key, Value: val} }
func Uint(key string, val uint) Field  { return Field{Key: key, Value: val} }
func Uint32(key string, val uint32) Field { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }

// Error creates an error field.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "nil"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with any value.
func Any(key string, val interface{}) Field { return Field{Key: key, Value: val} }
