package observe

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LevelOff disables logging when passed to NewLogger.
const LevelOff = "off"

// ParseLogLevel maps debug, info, warn and error (any case) to a slog level.
// The empty string is info. ok is false for anything else, in which case
// the level is info.
func ParseLogLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// slogLogger adapts a *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewLogger returns a JSON logger on stderr. See NewLoggerWithWriter.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter returns a JSON logger writing one object per line to w.
// Entries carry timestamp, level and msg keys, and values of credential
// keys are replaced with [REDACTED]. LevelOff returns a logger that drops
// everything.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	if strings.EqualFold(level, LevelOff) {
		return &noopLogger{}
	}
	lvl, _ := ParseLogLevel(level)
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceAttr,
	})
	return &slogLogger{l: slog.New(h)}
}

// FromSlog wraps an application logger. Redaction is left to its handler.
func FromSlog(l *slog.Logger) Logger {
	if l == nil {
		return &noopLogger{}
	}
	return &slogLogger{l: l}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey:
			return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339Nano))
		case slog.LevelKey:
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
			}
			return a
		case slog.MessageKey:
			return a
		}
	}
	if isRedactedField(a.Key) {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

// WithCall returns a logger whose entries carry the call's operation,
// resource and project.
func (l *slogLogger) WithCall(meta CallMeta) Logger {
	args := make([]any, 0, 3)
	args = append(args, slog.String("operation", meta.Operation))
	if meta.Resource != "" {
		args = append(args, slog.String("resource", meta.Resource))
	}
	if meta.ProjectID != 0 {
		args = append(args, slog.Int("project_id", meta.ProjectID))
	}
	return &slogLogger{l: l.l.With(args...)}
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !l.l.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = slog.Any(f.Key, f.Value)
	}
	l.l.LogAttrs(ctx, level, msg, attrs...)
}

var redactedKeys = func() map[string]bool {
	m := make(map[string]bool, len(RedactedFields))
	for _, k := range RedactedFields {
		m[strings.ToLower(k)] = true
	}
	return m
}()

func isRedactedField(key string) bool {
	return redactedKeys[strings.ToLower(key)]
}

var _ Logger = (*slogLogger)(nil)
