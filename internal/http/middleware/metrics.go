package middleware

import (
	"net/http"
	"strconv"
	"time"

	"chargemap/internal/metrics"
)

// Metrics records a request counter and duration histogram. The path label
// uses the matched route pattern, not the raw URL, to keep cardinality low.
func Metrics(m *metrics.HTTPMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			m.RequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}
