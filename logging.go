package formstate

import (
	"context"
	"log/slog"
	"time"
)

// LogEvent describes one loggable operation on a form.
type LogEvent struct {
	Kind     string
	Form     string
	Field    string
	Engine   string
	Expr     string
	Key      string
	Duration time.Duration
	Err      error
}

// Logger records form events.
type Logger interface {
	LogEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogEvent implements Logger.
func (f LoggerFunc) LogEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogEvent(LogEvent) {}

// WithLogger attaches a logger to the form.
func WithLogger(logger Logger) Option {
	return func(cfg *formConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SlogLogger forwards events to a structured logger. Failed operations are
// logged at warn level, everything else at debug.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) LogEvent(event LogEvent) {
	attrs := []slog.Attr{
		slog.String("kind", event.Kind),
		slog.String("form", event.Form),
	}
	if event.Field != "" {
		attrs = append(attrs, slog.String("field", event.Field))
	}
	if event.Engine != "" {
		attrs = append(attrs, slog.String("engine", event.Engine))
	}
	if event.Expr != "" {
		attrs = append(attrs, slog.String("expr", event.Expr))
	}
	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}

	level := slog.LevelDebug
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	l.logger.LogAttrs(context.Background(), level, "formstate: "+event.Kind, attrs...)
}
