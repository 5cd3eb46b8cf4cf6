package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome labels.
const (
	StatusSuccess        = "success"
	StatusNoResults      = "no_results"
	StatusInvalidInput   = "invalid_input"
	StatusTransportError = "transport_error"
	StatusResponseError  = "response_error"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_requests_total",
			Help: "Total number of geocoding calls by operation and outcome.",
		}, []string{"operation", "status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_request_duration_seconds",
			Help:    "Duration of requests to the Google Geocoding API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Observe records one finished call. A nil receiver is a no-op.
func (m *Metrics) Observe(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, status).Inc()
	if seconds >= 0 {
		m.RequestSeconds.WithLabelValues(operation).Observe(seconds)
	}
}
