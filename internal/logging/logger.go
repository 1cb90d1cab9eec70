package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger emits one JSON line per record, tagged with the process environment
// name. Records are written immediately; there is no buffering.
//
// Serialization cannot fail the caller: slog's JSON handler renders values
// it cannot marshal via their string form.
type Logger struct {
	sl  *slog.Logger
	env string
}

type settings struct {
	w io.Writer
}

type Option func(*settings)

// WithWriter redirects log output, primarily for tests.
func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		s.w = w
	}
}

// New creates a Logger writing JSON records to stdout, where the Lambda
// runtime forwards them to CloudWatch.
func New(env string, opts ...Option) *Logger {
	s := settings{w: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	return &Logger{
		sl:  slog.New(slog.NewJSONHandler(s.w, nil)),
		env: env,
	}
}

// Log emits the fields as a single record at the given severity. Level is an
// exact match against INFO, WARN or ERROR; anything else logs at INFO. The
// "event" field, when present, becomes the record message; app_env is always
// appended.
func (l *Logger) Log(level string, fields map[string]any) {
	lvl := slog.LevelInfo
	switch level {
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	}

	msg := ""
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for k, v := range fields {
		if k == "event" {
			if s, ok := v.(string); ok {
				msg = s
				continue
			}
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	attrs = append(attrs, slog.String("app_env", l.env))

	l.sl.LogAttrs(context.Background(), lvl, msg, attrs...)
}
