package tracer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status descriptions used by FinishSpan for interrupted requests.
const (
	StatusCancelled        = "cancelled"
	StatusDeadlineExceeded = "deadline exceeded"
)

type spanConfig struct {
	remoteParent    trace.SpanContext
	hasRemoteParent bool
	root            bool
	kind            trace.SpanKind
	attributes      []attribute.KeyValue
}

// SpanOption configures StartSpan.
type SpanOption func(*spanConfig)

// WithRemoteParent parents the span on sc, received from another process.
// A SpanContext without a valid trace-id counts as "no parent" and starts a
// new trace.
func WithRemoteParent(sc trace.SpanContext) SpanOption {
	return func(c *spanConfig) {
		c.remoteParent = sc
		c.hasRemoteParent = true
	}
}

// AsRoot starts a new trace, ignoring any span held by the context.
func AsRoot() SpanOption {
	return func(c *spanConfig) {
		c.root = true
	}
}

// WithKind overrides the default span kind.
func WithKind(kind trace.SpanKind) SpanOption {
	return func(c *spanConfig) {
		c.kind = kind
	}
}

// WithAttributes sets attributes at span start.
func WithAttributes(attrs ...attribute.KeyValue) SpanOption {
	return func(c *spanConfig) {
		c.attributes = append(c.attributes, attrs...)
	}
}

// StartSpan creates a new span named name on the tracer identified by
// tracerName and returns a context in which it is the current span.
//
// Parenting:
//   - AsRoot: new trace-id and span-id
//   - WithRemoteParent(sc) with a valid trace-id: same trace-id, parent span-id
//     taken from sc, fresh span-id
//   - WithRemoteParent(sc) without a valid trace-id: new trace
//   - otherwise: child of the span held by ctx, or a new trace if there is none
//
// Unless WithKind is given, the kind is internal when the parent is a span of
// this process and server otherwise.
//
// The returned span must be ended by the caller on every exit path, usually
// with a deferred EndSpan or FinishSpan.
//
// Example:
//
//	func (h *Handler) decide(ctx context.Context, value int) int {
//	    _, span := h.tracer.StartSpan(ctx, "worker", "is-odd")
//	    defer h.tracer.EndSpan(span, codes.Ok, "")
//	    // ...
//	}
func (t *Tracer) StartSpan(ctx context.Context, tracerName, name string, opts ...SpanOption) (context.Context, trace.Span) {
	var cfg spanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var startOpts []trace.SpanStartOption
	switch {
	case cfg.root:
		startOpts = append(startOpts, trace.WithNewRoot())
	case cfg.hasRemoteParent && cfg.remoteParent.TraceID().IsValid():
		ctx = trace.ContextWithRemoteSpanContext(ctx, cfg.remoteParent)
	case cfg.hasRemoteParent:
		startOpts = append(startOpts, trace.WithNewRoot())
		cfg.root = true
	}

	kind := cfg.kind
	if kind == trace.SpanKindUnspecified {
		kind = defaultKind(ctx, cfg.root)
	}
	startOpts = append(startOpts, trace.WithSpanKind(kind))
	if len(cfg.attributes) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(cfg.attributes...))
	}

	return t.provider.Tracer(tracerName).Start(ctx, name, startOpts...)
}

func defaultKind(ctx context.Context, root bool) trace.SpanKind {
	if root {
		return trace.SpanKindServer
	}
	parent := trace.SpanContextFromContext(ctx)
	if parent.IsValid() && !parent.IsRemote() {
		return trace.SpanKindInternal
	}
	return trace.SpanKindServer
}

// EndSpan sets the span status and ends it. Ending an already ended span has
// no effect, so the first EndSpan on a path wins.
func (t *Tracer) EndSpan(span trace.Span, code codes.Code, description string) {
	span.SetStatus(code, description)
	span.End()
}

// FinishSpan ends span with a status derived from err:
//   - nil: Ok
//   - context.Canceled: Error "cancelled"
//   - context.DeadlineExceeded: Error "deadline exceeded"
//   - anything else: the error is recorded and the status is Error with its message
//
// Example:
//
//	func (h *Handler) Enter(ctx context.Context) (value int, err error) {
//	    ctx, span := h.tracer.StartSpan(ctx, "entrypoint", "entrypoint", tracer.AsRoot())
//	    defer func() { h.tracer.FinishSpan(span, err) }()
//	    // ...
//	}
func (t *Tracer) FinishSpan(span trace.Span, err error) {
	switch {
	case err == nil:
		t.EndSpan(span, codes.Ok, "")
	case errors.Is(err, context.Canceled):
		span.RecordError(err)
		t.EndSpan(span, codes.Error, StatusCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		span.RecordError(err)
		t.EndSpan(span, codes.Error, StatusDeadlineExceeded)
	default:
		t.RecordErrorOnSpan(span, err)
		span.End()
	}
}
