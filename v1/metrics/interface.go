package metrics

import "time"

// Hop names used as the "hop" label.
const (
	HopEntrypoint = "entrypoint"
	HopWorker     = "worker"
)

// Counters records the outcome of one request at one hop. Each completed
// request increments exactly one of the two counters once.
type Counters interface {
	// IncrementSuccess increments request_success_count for hop.
	IncrementSuccess(hop string)

	// IncrementFailure increments request_failure_count for hop.
	IncrementFailure(hop string)
}

// MetricsCollector is the full surface of *Metrics.
type MetricsCollector interface {
	Counters

	// RecordRequestDuration records the duration (in seconds) for a request endpoint.
	RecordRequestDuration(start time.Time, endpoint string)
}

var _ MetricsCollector = (*Metrics)(nil)

// NewCounters returns m as Counters, or nil when counting is disabled.
func NewCounters(cfg Config, m *Metrics) Counters {
	if !cfg.Enabled {
		return nil
	}
	return m
}
