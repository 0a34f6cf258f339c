package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/tracerelay/v1/traceparent"
)

// RecordErrorOnSpan records an error on a span and sets its status to error.
//
// Example:
//
//	if err != nil {
//	    tracer.RecordErrorOnSpan(span, err)
//	    return nil, err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds the entries of attrs to span.
//
// Integers, floats, booleans and strings keep their attribute type; an int
// is stored as int64. Any other value is stored as its fmt.Sprint form.
//
// Example:
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//	    "result.value": value,
//	    "hop":          metrics.HopWorker,
//	})
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for key, value := range attrs {
		kvs = append(kvs, toAttribute(attribute.Key(key), value))
	}
	span.SetAttributes(kvs...)
}

func toAttribute(key attribute.Key, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return key.String(v)
	case bool:
		return key.Bool(v)
	case int:
		return key.Int(v)
	case int32:
		return key.Int64(int64(v))
	case int64:
		return key.Int64(v)
	case float64:
		return key.Float64(v)
	case []string:
		return key.StringSlice(v)
	case fmt.Stringer:
		return key.String(v.String())
	default:
		return key.String(fmt.Sprint(v))
	}
}

// InjectCarrier writes the trace context of the span held by ctx into
// carrier. Other keys are preserved and an existing traceparent is replaced.
// Without a valid span in ctx the carrier is left untouched.
//
// Example:
//
//	tracerClient.InjectCarrier(ctx, propagation.HeaderCarrier(req.Header))
func (t *Tracer) InjectCarrier(ctx context.Context, carrier propagation.TextMapCarrier) {
	traceparent.Inject(traceSpan.SpanContextFromContext(ctx), carrier)
}

// RemoteParent decodes the carrier's trace context. Malformed input is logged
// and reported as absent: propagation problems never fail the request.
func (t *Tracer) RemoteParent(ctx context.Context, carrier propagation.TextMapCarrier) traceSpan.SpanContext {
	sc, err := traceparent.Decode(carrier)
	if err != nil {
		if t.logger != nil {
			t.logger.WarnWithContext(ctx, "ignoring malformed trace context", err, nil)
		}
		return traceSpan.SpanContext{}
	}
	return sc
}
