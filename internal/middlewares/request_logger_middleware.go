package middlewares

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sonuudigital/nimblestore/internal/logs"
)

const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags each request with an id, reusing the caller's one when present.
func RequestLogger(logger logs.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			reqLogger := logger.With("requestId", requestID, "method", r.Method, "path", r.URL.Path)
			args := []any{"status", rec.status, "duration", time.Since(start).String()}
			if rec.status >= http.StatusInternalServerError {
				reqLogger.Error("request failed", args...)
				return
			}
			reqLogger.Info("request handled", args...)
		})
	}
}
