package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/abhaypanjeta/TimeDesk/internal/metrics"
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Metrics records a request counter and latency histogram per route.
func Metrics(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.ObserveRequest(route, r.Method, strconv.Itoa(sw.code), time.Since(start).Seconds())
	})
}
