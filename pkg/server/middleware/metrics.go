package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "groona_insights_requests_total",
		Help: "Completed HTTP requests by method and status.",
	},
	[]string{"method", "status"},
)

// Metrics counts completed requests.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			requestsTotal.WithLabelValues(req.Method, strconv.Itoa(rec.status)).Inc()
		})
	}
}
