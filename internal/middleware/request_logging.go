package middleware

import (
	"net/http"
	"strings"
	"time"

	"paddy-backend/internal/logger"
)

// RequestLogging emits one structured log line per request. Health and
// metrics probes are skipped to keep the log readable.
func RequestLogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipLogging(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
				"bytes", wrapped.bytesWritten,
				"ip", clientIP(r),
			}
			if tc, ok := TenantFromContext(r.Context()); ok {
				fields = append(fields, "tenant_id", tc.TenantID, "user_id", tc.UserID)
			}

			if wrapped.statusCode >= 500 {
				log.Error("request failed", fields...)
			} else {
				log.Info("request", fields...)
			}
		})
	}
}

func shouldSkipLogging(path string) bool {
	return strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics")
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
