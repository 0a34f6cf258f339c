package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementSuccess increments the success counter for hop.
// Example: metrics.IncrementSuccess(metrics.HopWorker)
func (m *Metrics) IncrementSuccess(hop string) {
	m.successTotal.WithLabelValues(hop).Inc()
}

// IncrementFailure increments the failure counter for hop.
// Example: metrics.IncrementFailure(metrics.HopEntrypoint)
func (m *Metrics) IncrementFailure(hop string) {
	m.failureTotal.WithLabelValues(hop).Inc()
}

// RecordRequestDuration records the duration (in seconds) for a request endpoint.
// Example: defer metrics.RecordRequestDuration(time.Now(), "/worker")
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
