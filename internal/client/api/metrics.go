package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments backend calls per endpoint.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Backend requests by endpoint and HTTP status (\"none\" when no response arrived).",
			},
			[]string{"endpoint", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Backend request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register api metrics: %w", err)
		}
	}
	return m, nil
}

// observe is a no-op on a nil receiver.
func (m *Metrics) observe(endpoint string, code int, d time.Duration) {
	if m == nil {
		return
	}
	label := "none"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(endpoint, label).Inc()
	m.duration.WithLabelValues(endpoint).Observe(d.Seconds())
}
