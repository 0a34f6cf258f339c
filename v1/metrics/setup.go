package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each process keeps its own isolated registry.
	Registry *prometheus.Registry

	successTotal    *prometheus.CounterVec
	failureTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
//
// The setup includes:
//   - A dedicated Prometheus registry
//   - request_success_count / request_failure_count counters labelled by hop
//   - request_duration_seconds histogram labelled by endpoint
//   - Go, process and build info collectors when enabled
//   - A constant "service" label on everything registered
//   - An HTTP server exposing the registry at /metrics
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "tracerelay"})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.successTotal = createCounterVec(cfg.Namespace, "request_success_count", "Number of requests completed successfully, by the hop that observed the outcome", []string{"hop"})
	m.failureTotal = createCounterVec(cfg.Namespace, "request_failure_count", "Number of requests that failed, by the hop that observed the outcome", []string{"hop"})
	m.requestDuration = createHistogramVec(cfg.Namespace, "request_duration_seconds", "Duration of HTTP requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)

	wrappedRegistry.MustRegister(
		m.successTotal,
		m.failureTotal,
		m.requestDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}
	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
