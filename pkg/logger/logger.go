// Package logger configures slog and provides request logging for chi routers.
package logger

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler returns a JSON handler writing to stdout. A nil opts logs at info level.
func NewHandler(opts *slog.HandlerOptions) slog.Handler {
	return NewHandlerTo(os.Stdout, opts)
}

// NewHandlerTo returns a JSON handler writing to w.
func NewHandlerTo(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}

	return slog.NewJSONHandler(w, opts)
}

// ParseLevel converts a config value such as "debug" or "WARN" to a level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// NewLoggerMiddleware logs every request once it has been served.
func NewLoggerMiddleware(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				attrs := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				}
				if ww.Status() >= http.StatusInternalServerError {
					log.ErrorContext(r.Context(), "Request served", attrs...)

					return
				}
				log.InfoContext(r.Context(), "Request served", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
