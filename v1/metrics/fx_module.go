package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides *Metrics and, when enabled, exposes it as Counters
//  2. Provides *Pusher (nil when no push URL is configured)
//  3. Invokes RegisterMetricsLifecycle to run the /metrics server and the pusher
//
// Dependencies required by this module:
// - A metrics.Config instance
// - A logger.Logger instance
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		NewPusher,
		NewCounters,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle
// of the Prometheus metrics HTTP server and the Pushgateway flush loop.
//
// The lifecycle hook:
//   - OnStart: launches the metrics server in a background goroutine and starts the pusher.
//   - OnStop: stops the pusher (with a final flush) and shuts the server down.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, p *Pusher, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			if p != nil {
				p.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			if p != nil {
				if err := p.Stop(ctx); err != nil {
					log.Warn("final metrics push failed", err, nil)
				}
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
