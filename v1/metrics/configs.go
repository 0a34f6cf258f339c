package metrics

import "time"

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Enabled turns request counting on. When false, components receive a
	// nil Counters and skip increments; /metrics is still served.
	Enabled bool `yaml:"enabled" envconfig:"METRICS_ENABLED" default:"true"`

	// Address determines the network address where the /metrics endpoint listens.
	//
	// Example values:
	//   - ":9090"   → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS" default:":9090"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS" default:"true"`

	// Namespace sets a global prefix for all metrics registered by this service.
	//
	// Example:
	//   Namespace: "tracerelay"
	//   → request_success_count becomes tracerelay_request_success_count
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is added as the "service" label on every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" default:"tracerelay"`

	// PushURL is the Pushgateway base URL. Empty disables pushing.
	PushURL string `yaml:"push_url" envconfig:"METRICS_PUSH_URL"`

	// PushInterval is the flush period of the Pusher.
	PushInterval time.Duration `yaml:"push_interval" envconfig:"METRICS_PUSH_INTERVAL" default:"15s"`

	// PushJob is the Pushgateway job name.
	PushJob string `yaml:"push_job" envconfig:"METRICS_PUSH_JOB" default:"tracerelay"`
}
