package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records request latency labelled by the matched route pattern, so
// session ids never become label values.
func Metrics(m *metrics.QuoteMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}
