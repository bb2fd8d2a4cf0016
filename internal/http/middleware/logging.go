package middleware

import (
	"net/http"
	"time"

	"github.com/ypamar/newsletter/pkg/logger"
)

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request. Server errors are logged at error
// level, client errors at warn and the rest at debug.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			entry := log.WithFields(map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				entry = entry.WithField("request_id", requestID)
			}

			switch {
			case rec.statusCode >= 500:
				entry.Error("Request failed")
			case rec.statusCode >= 400:
				entry.Warn("Request rejected")
			default:
				entry.Debug("Request served")
			}
		})
	}
}
