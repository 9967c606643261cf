package middleware

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger = zerolog.Nop()

// InitLogger sets up the global logger with structured JSON output on stdout.
func InitLogger(level, service string) zerolog.Logger {
	return initLogger(os.Stdout, level, service)
}

func initLogger(out io.Writer, level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", service).
		Logger()
	return Logger
}

// RequestLogger logs each request once it completes.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		evt := Logger.Info()
		if ww.statusCode >= 500 {
			evt = Logger.Error()
		} else if ww.statusCode >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("request_id", GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", routeTemplate(r)).
			Int("status", ww.statusCode).
			Dur("duration_ms", time.Since(start)).
			Int("bytes_sent", ww.bytes).
			Msg("request")
	})
}
