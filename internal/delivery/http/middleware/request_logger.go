package middleware

import (
	"net/http"
	"strings"
	"time"

	"shipzone-backend/internal/infrastructure/metrics"
	"shipzone-backend/pkg/logger"

	"github.com/google/uuid"
)

// NewRequestLogger tags each request with an id, stores a request logger in
// the context and logs the outcome. When m is non-nil the request is also
// recorded in the HTTP metrics.
func NewRequestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.New().String()[:8]
			}

			reqLogger := logger.WithRequestID(requestID)
			r = r.WithContext(logger.NewContext(r.Context(), &reqLogger))
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if m != nil {
				m.ObserveRequest(r.Method, wrapped.statusCode, duration)
			}

			logEvent := reqLogger.Info()
			if wrapped.statusCode >= 500 {
				logEvent = reqLogger.Error()
			} else if wrapped.statusCode >= 400 {
				logEvent = reqLogger.Warn()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", wrapped.statusCode).
				Dur("duration_ms", duration).
				Str("ip", getClientIP(r)).
				Str("user_agent", r.UserAgent()).
				Msg("HTTP")
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// getClientIP extracts client IP from request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
