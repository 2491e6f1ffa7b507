// Package logging builds the service logger and the HTTP access-log middleware.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/PratikDhanave/pet-feeder-service/internal/config"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// New creates the process logger. JSON goes to stdout unless cfg.Format is
// "console", which renders human-readable lines for local development.
func New(cfg config.LoggingConfig, version string) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg, version)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig, version string) zerolog.Logger {
	out := w
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "pet-feeder-api").
		Str("version", version).
		Logger()
}

// ParseLevel converts a config string to a zerolog level; unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Middleware logs one line per request and puts a request-scoped logger
// (carrying request_id when present) into the request context, where
// handlers retrieve it with zerolog.Ctx.
func Middleware(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		lctx := base.With()
		if id := c.GetString(RequestIDKey); id != "" {
			lctx = lctx.Str("request_id", id)
		}
		logger := lctx.Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		ev := logger.Info()
		switch {
		case status >= 500:
			ev = logger.Error()
		case status >= 400:
			ev = logger.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
