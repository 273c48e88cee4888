package middleware

import (
	"net/http"
	"time"

	log "github.com/Ptt-Alertor/logrus"

	"github.com/Ptt-Alertor/bank-api/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request and records request metrics
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		took := time.Since(start)

		metrics.ObserveRequest(r.Method, rw.statusCode, took)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"IP":         r.RemoteAddr,
			"URI":        r.URL.Path,
			"status":     rw.statusCode,
			"request_id": GetRequestID(r.Context()),
			"took":       took.String(),
		}).Info("visit")
	})
}
