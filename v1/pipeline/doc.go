/*
Package pipeline provides the instrumented request chain: an entrypoint that
opens a root span and relays to a worker, and a worker that joins the
propagated trace, runs the dice computation and reports the result.

Both roles live on one Handler and can be served from one process (RoleAll) or
split across two processes chained through WORKER_URL.

Request flow:

	GET /entrypoint
	  span "entrypoint" (server, new trace)
	  └── relay GET <WORKER_URL>/worker  traceparent: 00-<trace-id>-<span-id>-01
	        span "worker" (server, child of "entrypoint")
	        └── span "is-odd" (internal)

Basic Usage:

	import (
		"github.com/Aleph-Alpha/tracerelay/v1/pipeline"
		"github.com/Aleph-Alpha/tracerelay/v1/relay"
		"github.com/Aleph-Alpha/tracerelay/v1/tracer"
	)

	relayClient := relay.NewClient(relayCfg, tracerClient).
		WithMetrics(counters).
		WithBodyValidator(pipeline.ValidateValue)
	handler := pipeline.NewHandler(cfg, tracerClient, relayClient, counters, log)

	srv, err := pipeline.NewServer(cfg, handler, m, log)
	if err != nil {
		log.Fatal("invalid server configuration", err, nil)
	}
	go srv.Server.ListenAndServe()

The worker never fails a request because of trace context: a missing header
starts a new trace and a malformed one is logged and treated as missing.

FX Module Integration:

	app := fx.New(
		config.FXModule,
		logger.FXModule,
		tracer.FXModule,
		metrics.FXModule,
		relay.FXModule,
		pipeline.FXModule,
	)
*/
package pipeline
