package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

// FXModule provides the *Tracer to the application and flushes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(cfg Config, log logger.Logger) (*Tracer, error) {
			return NewClient(cfg, log)
		},
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX lifecycle.
// On stop, pending spans are flushed to the exporter before the provider closes.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer...", nil, nil)
			return tracer.Shutdown(ctx)
		},
	})
}
