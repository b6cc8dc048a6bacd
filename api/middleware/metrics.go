package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/receipt-processor/pkg/metrics"
)

// Metrics records request count and latency keyed by chi route pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			if route == r.URL.Path && rec.Status() == http.StatusNotFound {
				route = "unmatched"
			}
			m.Observe(r.Method, route, rec.Status(), time.Since(start))
		})
	}
}
