// Package logging wraps zap with key/value call sites and trace correlation.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is safe for concurrent use. A nil *Logger logs through Default.
type Logger struct {
	base   *zap.Logger
	synced *atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// ParseLevel accepts debug, info, warn or error, case-insensitively.
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

func NewJSON(level Level) *Logger {
	return NewJSONWriter(level, os.Stdout)
}

// NewJSONWriter writes one JSON object per line to w.
func NewJSONWriter(level Level, w io.Writer) *Logger {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)

	return wrap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{base: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) orDefault() *Logger {
	if l == nil || l.base == nil {
		return Default()
	}
	return l
}

// Sync flushes buffered output once; derived loggers share the flag.
func (l *Logger) Sync() error {
	if l == nil || l.base == nil {
		return nil
	}
	if !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.base.Sync()
}

func (l *Logger) derive(z *zap.Logger) *Logger {
	return &Logger{base: z, synced: l.synced}
}

func (l *Logger) With(args ...any) *Logger {
	l = l.orDefault()
	return l.derive(l.base.With(toFields(args)...))
}

// Named scopes log lines to a component, e.g. "dataset" or "httpapi".
func (l *Logger) Named(name string) *Logger {
	l = l.orDefault()
	return l.derive(l.base.Named(name))
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, toFields(args)) }
func (l *Logger) Info(msg string, args ...any) { l.write(LevelInfo, msg, toFields(args)) }
func (l *Logger) Warn(msg string, args ...any) { l.write(LevelWarn, msg, toFields(args)) }
func (l *Logger) Error(msg string, args ...any) { l.write(LevelError, msg, toFields(args)) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(LevelDebug, msg, withTrace(ctx, args))
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(LevelInfo, msg, withTrace(ctx, args))
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(LevelWarn, msg, withTrace(ctx, args))
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(LevelError, msg, withTrace(ctx, args))
}

// Debugf, Infof and Errorf satisfy printf-style logger hooks such as the
// pyroscope client's.
func (l *Logger) Debugf(format string, args ...any) { l.write(LevelDebug, fmt.Sprintf(format, args...), nil) }
func (l *Logger) Infof(format string, args ...any) { l.write(LevelInfo, fmt.Sprintf(format, args...), nil) }
func (l *Logger) Errorf(format string, args ...any) { l.write(LevelError, fmt.Sprintf(format, args...), nil) }

func (l *Logger) write(level Level, msg string, fields []zap.Field) {
	l = l.orDefault()
	if ce := l.base.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}
