package relay

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

// FXModule provides a *Client wired to the tracer, the counters and the logger.
//
// Dependencies required by this module:
// - relay.Config
// - *tracer.Tracer
// - metrics.Counters (may be nil)
// - logger.Logger
var FXModule = fx.Module("relay",
	fx.Provide(NewClientWithDI),
)

// NewClientWithDI builds a Client from the dependency injection container.
func NewClientWithDI(cfg Config, t *tracer.Tracer, counters metrics.Counters, log logger.Logger) *Client {
	return NewClient(cfg, t).
		WithMetrics(counters).
		WithLogger(log)
}
