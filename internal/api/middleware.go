package api

import (
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/platform/metrics"
	"delivery-hub-service/internal/platform/obs"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware tags the request with an id, then logs duration and
// response size and counts the request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(obs.WithRequestID(r.Context(), reqID)))

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		metrics.HTTPRequests.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()

		logger.L().Info("http request",
			"req_id", reqID,
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", sw.status,
			"bytes", sw.bytes,
			"dur_ms", time.Since(start).Milliseconds(),
		)
	})
}

// routes are the paths NewRouter serves; anything else is counted as "other"
// so metric labels stay a fixed set.
var routes = map[string]bool{
	"/health":   true,
	"/places":   true,
	"/optimize": true,
	"/runs":     true,
	"/metrics":  true,
}

func routeLabel(path string) string {
	if routes[path] {
		return path
	}
	return "other"
}

// rateLimitMiddleware rejects requests with 429 once the token bucket is
// empty. A nil limiter disables limiting.
func rateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
