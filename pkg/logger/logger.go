package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance
var log zerolog.Logger = zerolog.Nop()

type ctxKey struct{}

// Init initializes the global logger
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout

	// Pretty console output for development
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.SetGlobalLevel(ParseLevel(logLevel))

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Str("service", "shipzone").
		Logger()
}

// ParseLevel maps a config string onto a zerolog level, defaulting to info.
func ParseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request scoped logger, or the global one
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID adds a request ID to the logger
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// WithUserID adds a user ID to the logger
func WithUserID(l zerolog.Logger, userID string) zerolog.Logger {
	return l.With().Str("user_id", userID).Logger()
}

// --- Structured Logging Helpers ---

// DBQuery logs a database query
func DBQuery(query string, duration time.Duration, err error) {
	event := log.Debug().
		Str("query", query).
		Dur("duration_ms", duration)

	if err != nil {
		event.Err(err).Msg("DB Query Failed")
	} else {
		event.Msg("DB Query")
	}
}

// ServiceStart logs service startup
func ServiceStart(name, version, port string) {
	log.Info().
		Str("version", version).
		Str("port", port).
		Msgf("%s started", name)
}

// ServiceStop logs service shutdown
func ServiceStop(name string) {
	log.Info().Msgf("%s stopped", name)
}
