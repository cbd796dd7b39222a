package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// maxLogLineLen bounds the request log line so chatty responses don't flood
// the log output.
const maxLogLineLen = 120

// requestLogger logs one line per completed /api request with its method,
// path, status, and duration. Non-API traffic (health checks) is skipped.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api") {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		line := r.Method + " " + r.URL.Path
		if len(line) > maxLogLineLen {
			line = line[:maxLogLineLen-1] + "…"
		}
		slog.Info(line,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
