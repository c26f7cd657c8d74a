package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// envVar selects the output format: "dev" gets a human-readable console
// writer, anything else gets JSON lines for log shipping.
const envVar = "APP_ENV"

// zerologLogger adapts rs/zerolog to the Logger interface. Every line
// carries a component field so the service, the backend client and the
// notifier can be told apart in aggregated output.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger builds a logger for the component, picking the writer
// from the environment.
func NewZerologLogger(component string) Logger {
	var w io.Writer = os.Stdout
	if strings.EqualFold(os.Getenv(envVar), "dev") {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewZerologLoggerTo(component, w)
}

// NewZerologLoggerTo builds a logger for the component writing to w. Tests
// use it to capture output.
func NewZerologLoggerTo(component string, w io.Writer) Logger {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.zl.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *zerologLogger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
