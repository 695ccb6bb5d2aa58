package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/email-verify-api/internal/pkg/id"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger emits one slog line per request, tagged with a fresh ULID so
// concurrent requests can be told apart in the logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := id.New()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
