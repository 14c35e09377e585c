package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records per-route request metadata.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently being served.",
	})
	reg.MustRegister(duration, inFlight)
	return &HTTPMetrics{
		duration: duration,
		inFlight: inFlight,
	}
}

// ObserveRequest records the duration of a handled request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	h.duration.WithLabelValues(method, normalizeRoute(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncInFlight marks a request as started.
func (h *HTTPMetrics) IncInFlight() {
	if h == nil || h.inFlight == nil {
		return
	}
	h.inFlight.Inc()
}

// DecInFlight marks a request as finished.
func (h *HTTPMetrics) DecInFlight() {
	if h == nil || h.inFlight == nil {
		return
	}
	h.inFlight.Dec()
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}
