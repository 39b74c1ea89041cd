package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

// LogRequest stamps every request with an id (kept if the client sent one)
// and logs method, path and duration.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
				r.Header.Set(RequestIDHeader, reqID)
			}
			w.Header().Set(RequestIDHeader, reqID)

			start := time.Now()
			next.ServeHTTP(w, r)

			log.WithFields(log.Fields{
				"request_id": reqID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"took":       time.Since(start).String(),
			}).Debugf(" ====> request [%s] path: [%s] [UA: %s]", r.Method, r.URL.Path, r.UserAgent())
		})
	}
}
