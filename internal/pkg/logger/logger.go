package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs the package-level helpers and log.Logger
var defaultLogger zerolog.Logger

// LogLevel is a level name as written in the configuration
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	// FatalLevel exits the process after logging
	FatalLevel LogLevel = "fatal"
)

var zerologLevels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// Config describes how log lines are written
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to the console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
	// Service, when set, is attached to every line as "service"
	Service string
}

// Configure installs a new default logger and returns it
func Configure(config Config) zerolog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, ok := zerologLevels[config.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lc := zerolog.New(out).With().Timestamp()
	if config.Service != "" {
		lc = lc.Str("service", config.Service)
	}
	defaultLogger = lc.Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

// ParseLevel maps a configured level name to a LogLevel, falling back to info
func ParseLevel(level string) LogLevel {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if _, ok := zerologLevels[l]; ok {
		return l
	}
	return InfoLevel
}

func Debug() *zerolog.Event { return defaultLogger.Debug() }

func Info() *zerolog.Event { return defaultLogger.Info() }

func Warn() *zerolog.Event { return defaultLogger.Warn() }

func Error() *zerolog.Event { return defaultLogger.Error() }

// Fatal logs and then exits the process
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

// WithField returns a child of the default logger carrying key
func WithField(key string, value interface{}) zerolog.Logger {
	return defaultLogger.With().Interface(key, value).Logger()
}

type ctxKey struct{}

// WithContext stores a request-scoped logger in ctx
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, or the default one
func FromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return &l
	}
	return &defaultLogger
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
