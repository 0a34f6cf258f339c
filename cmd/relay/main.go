// Command relay serves the entrypoint and worker roles of the trace relay.
//
// All settings come from the environment, see package config. Run one
// process with SERVER_ROLE=all, or chain two:
//
//	SERVER_ROLE=worker SERVER_ADDRESS=:8081 METRICS_ADDRESS=:9091 relay
//	SERVER_ROLE=entrypoint WORKER_URL=http://localhost:8081 relay
package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/tracerelay/v1/config"
	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/pipeline"
	"github.com/Aleph-Alpha/tracerelay/v1/relay"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

func options() fx.Option {
	return fx.Options(
		config.FXModule,
		logger.FXModule,
		tracer.FXModule,
		metrics.FXModule,
		relay.FXModule,
		pipeline.FXModule,
		fx.WithLogger(func(log *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap}
		}),
	)
}

func main() {
	fx.New(options()).Run()
}
