// Package tracer provides the span factory and the observability handle used
// by every hop of the tracerelay pipeline.
//
// The Tracer wraps an OpenTelemetry TracerProvider that is constructed
// explicitly and passed to its users; nothing is registered as an otel
// global. Context travels as an ordinary context.Context parameter: a span
// started from a context becomes the parent of any span started from the
// context returned alongside it.
//
// Core Features:
//   - Root, remote-parented and nested span creation with kind defaults
//   - Exactly-once span completion with status derived from the error
//   - Trace context propagation through the traceparent codec
//   - OTLP/HTTP export to a collector
//
// Basic Usage:
//
//	tracerClient, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "tracerelay",
//		AppEnv:       "development",
//		EnableExport: true,
//		Endpoint:     "http://localhost:4318",
//	}, log)
//
//	// New trace
//	ctx, span := tracerClient.StartSpan(ctx, "entrypoint", "entrypoint", tracer.AsRoot())
//	defer func() { tracerClient.FinishSpan(span, err) }()
//
//	// Continue a trace received from another process
//	parent := tracerClient.RemoteParent(ctx, propagation.HeaderCarrier(r.Header))
//	ctx, span := tracerClient.StartSpan(ctx, "worker", "worker", tracer.WithRemoteParent(parent))
//	defer tracerClient.EndSpan(span, codes.Ok, "")
//
//	// Nested work inside the current span (kind internal)
//	_, child := tracerClient.StartSpan(ctx, "worker", "is-odd")
//
// Span kinds default to server when the parent is remote or absent, and to
// internal when the parent is a span of this process.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		// ... other modules
//	)
//
// Thread Safety:
//
// All methods on Tracer are safe for concurrent use. A span is owned by the
// call frame that started it and must be ended by that frame.
package tracer
