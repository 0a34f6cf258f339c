// Package metrics provides Prometheus-based request counters for tracerelay.
//
// Every hop of the request pipeline reports its outcome through two
// counters, request_success_count and request_failure_count, labelled with
// the hop that observed the outcome ("entrypoint" or "worker"). A histogram,
// request_duration_seconds, records inbound request latency per endpoint.
//
// # Architecture
//
//   - Counters interface: what the relay and the handlers need
//   - Metrics struct: Prometheus implementation with its own registry
//   - Pusher: periodic flush of the registry to a Pushgateway
//   - FXModule: provides *Metrics, Counters and *Pusher with lifecycle hooks
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "tracerelay",
//	})
//	go m.Server.ListenAndServe()
//
//	m.IncrementSuccess(metrics.HopWorker)
//	defer m.RecordRequestDuration(time.Now(), "/worker")
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Go runtime and process collectors
//	METRICS_NAMESPACE=tracerelay               # optional metric name prefix
//	METRICS_SERVICE_NAME=tracerelay            # "service" label on every metric
//	METRICS_PUSH_URL=http://pushgateway:9091   # enables periodic push
//	METRICS_PUSH_INTERVAL=15s
//	METRICS_PUSH_JOB=tracerelay
//
// # Thread Safety
//
// All methods are safe for concurrent use. Counter increments are atomic and
// commutative; no ordering between concurrent requests is implied.
package metrics
