package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Options selects where and how records are written.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// SlogLogger adapts *slog.Logger to Logger so packages never import log/slog directly.
type SlogLogger struct {
	base *slog.Logger
}

// NewSlogLogger writes to stdout with LOG_LEVEL and LOG_FORMAT taken from the environment.
func NewSlogLogger() *SlogLogger {
	return New(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewSlogLoggerWithWriter writes JSON records to w.
func NewSlogLoggerWithWriter(w io.Writer, level string) *SlogLogger {
	return New(Options{Level: level, Writer: w})
}

func New(opts Options) *SlogLogger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	return &SlogLogger{base: slog.New(handler)}
}

// Discard drops every record. Handy where a component needs a logger but nobody reads it.
func Discard() *SlogLogger {
	return New(Options{Writer: io.Discard, Level: "ERROR"})
}

// parseLevel accepts the slog level names in any case, including offsets
// such as "WARN+2". Anything else falls back to INFO.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (s *SlogLogger) Debug(msg string, args ...any) { s.base.Debug(msg, args...) }

func (s *SlogLogger) Info(msg string, args ...any) { s.base.Info(msg, args...) }

func (s *SlogLogger) Warn(msg string, args ...any) { s.base.Warn(msg, args...) }

func (s *SlogLogger) Error(msg string, args ...any) { s.base.Error(msg, args...) }

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{base: s.base.With(args...)}
}
