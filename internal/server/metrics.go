package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

// metricsCollector owns the HTTP request collectors and the middleware that
// feeds them.
type metricsCollector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetricsCollector() *metricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metricsCollector{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_api_requests_total",
			Help: "Total HTTP requests served, by method, route and status code.",
		}, []string{"method", "endpoint", "status_code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travel_api_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// handler serves the /metrics endpoint.
func (m *metricsCollector) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records per-request metrics. The endpoint label is the mux
// route template, not the raw path, so IDs do not explode cardinality.
func (m *metricsCollector) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(rw.statusCode)

		m.requestsTotal.WithLabelValues(r.Method, endpoint, statusCode).Inc()
		m.requestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
	})
}
