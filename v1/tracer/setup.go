package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

// Tracer is the process-wide observability handle for spans. It owns the
// TracerProvider and is shared by reference with every component that starts
// or propagates spans.
type Tracer struct {
	provider *sdktrace.TracerProvider
	logger   logger.Logger
}

// NewClient creates and initializes a new Tracer.
//
// Parameters:
//   - cfg: service identity and export settings
//   - log: logger for degraded propagation and lifecycle events
//   - opts: extra provider options appended last, e.g. a span processor in tests
//
// The provider samples every new trace and follows the sampling decision of
// a remote parent. When export is enabled a batching OTLP/HTTP exporter sends
// spans to cfg.Endpoint.
//
// Example:
//
//	recorder := tracetest.NewSpanRecorder()
//	tracerClient, err := tracer.NewClient(cfg, log, sdktrace.WithSpanProcessor(recorder))
func NewClient(cfg Config, log logger.Logger, opts ...sdktrace.TracerProviderOption) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
		}
		if cfg.Insecure {
			clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			return nil, fmt.Errorf("cannot initiate trace exporter: %w", err)
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options,
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.AppEnv),
			attribute.String("environment", cfg.AppEnv),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	options = append(options, opts...)

	return &Tracer{
		provider: sdktrace.NewTracerProvider(options...),
		logger:   log,
	}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
