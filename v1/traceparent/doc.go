// Package traceparent encodes and decodes trace context in the W3C traceparent
// format for carrying it across process boundaries.
//
// A trace context travels as a single carrier key, "traceparent", whose value is
//
//	version-traceid-spanid-flags
//	00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// The package works on OpenTelemetry's trace.SpanContext and on any
// propagation.TextMapCarrier, so the same codec serves HTTP headers and
// plain maps.
//
// Basic Usage:
//
//	// Sending side: put the current span's context on the outbound request.
//	traceparent.Inject(trace.SpanContextFromContext(ctx), propagation.HeaderCarrier(req.Header))
//
//	// Receiving side: read it back.
//	sc, err := traceparent.Decode(propagation.HeaderCarrier(r.Header))
//	switch {
//	case traceparent.IsMalformed(err):
//		// header present but unusable, start a new trace
//	case !sc.TraceID().IsValid():
//		// no incoming trace
//	}
//
// Decoding never has side effects. A missing key is not an error: Decode
// returns the zero SpanContext. A key that is present but fails validation
// returns an error matching ErrMalformedContext.
//
// Thread Safety:
//
// All functions are safe for concurrent use. Carriers are not; each carrier is
// owned by the request that builds it.
package traceparent
