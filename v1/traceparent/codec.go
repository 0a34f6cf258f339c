package traceparent

import (
	"encoding/hex"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	// HeaderTraceParent is the carrier key holding the encoded trace context.
	HeaderTraceParent = "traceparent"

	supportedVersion = 0x00

	// 2 (version) + 32 (trace-id) + 16 (span-id) + 2 (flags) + 3 delimiters
	headerLength = 55

	traceIDStart = 3
	spanIDStart  = 36
	flagsStart   = 53
)

// Encode returns a carrier holding exactly one key, HeaderTraceParent, that
// reconstructs sc when passed to Decode.
//
// A SpanContext without a valid trace-id has nothing to propagate and yields
// an empty carrier. Encode never modifies sc.
//
// Example:
//
//	carrier := traceparent.Encode(trace.SpanContextFromContext(ctx))
//	for key, value := range carrier {
//	    req.Header.Set(key, value)
//	}
func Encode(sc trace.SpanContext) propagation.MapCarrier {
	carrier := propagation.MapCarrier{}
	Inject(sc, carrier)
	return carrier
}

// Inject merges the encoded form of sc into an existing carrier. Keys other
// than HeaderTraceParent are left untouched; an existing HeaderTraceParent
// value is overwritten.
func Inject(sc trace.SpanContext, carrier propagation.TextMapCarrier) {
	if !sc.TraceID().IsValid() {
		return
	}
	carrier.Set(HeaderTraceParent, Format(sc))
}

// Format renders sc as a version 00 traceparent value.
func Format(sc trace.SpanContext) string {
	var buf [headerLength]byte

	traceID := sc.TraceID()
	spanID := sc.SpanID()

	hex.Encode(buf[0:2], []byte{supportedVersion})
	buf[2] = '-'
	hex.Encode(buf[traceIDStart:traceIDStart+32], traceID[:])
	buf[traceIDStart+32] = '-'
	hex.Encode(buf[spanIDStart:spanIDStart+16], spanID[:])
	buf[spanIDStart+16] = '-'
	hex.Encode(buf[flagsStart:], []byte{byte(sc.TraceFlags())})

	return string(buf[:])
}

// Decode reads HeaderTraceParent from the carrier.
//
// Returns:
//   - the zero SpanContext and a nil error when the key is missing or empty,
//     meaning there is no incoming trace
//   - an error matching ErrMalformedContext when the value fails validation
//   - the decoded SpanContext otherwise
//
// Unknown keys in the carrier are ignored. The returned SpanContext is not
// marked remote; callers that parent spans on it decide that.
func Decode(carrier propagation.TextMapCarrier) (trace.SpanContext, error) {
	value := carrier.Get(HeaderTraceParent)
	if value == "" {
		return trace.SpanContext{}, nil
	}
	return Parse(value)
}

// Parse validates a single traceparent value.
//
// Only version 00 is accepted, all hex must be lowercase, and the trace-id
// must not be all zeros. An all-zero span-id is accepted: it carries a trace
// without a parent span.
func Parse(value string) (trace.SpanContext, error) {
	if len(value) != headerLength {
		return trace.SpanContext{}, malformed(value, "length %d, want %d", len(value), headerLength)
	}
	if value[2] != '-' || value[spanIDStart-1] != '-' || value[flagsStart-1] != '-' {
		return trace.SpanContext{}, malformed(value, "missing field delimiter")
	}

	var version [1]byte
	if err := decodeField(version[:], value[0:2]); err != nil {
		return trace.SpanContext{}, malformed(value, "version: %v", err)
	}
	if version[0] != supportedVersion {
		return trace.SpanContext{}, malformed(value, "unsupported version %02x", version[0])
	}

	var traceID trace.TraceID
	if err := decodeField(traceID[:], value[traceIDStart:spanIDStart-1]); err != nil {
		return trace.SpanContext{}, malformed(value, "trace-id: %v", err)
	}
	if !traceID.IsValid() {
		return trace.SpanContext{}, malformed(value, "trace-id is all zeros")
	}

	var spanID trace.SpanID
	if err := decodeField(spanID[:], value[spanIDStart:flagsStart-1]); err != nil {
		return trace.SpanContext{}, malformed(value, "span-id: %v", err)
	}

	var flags [1]byte
	if err := decodeField(flags[:], value[flagsStart:]); err != nil {
		return trace.SpanContext{}, malformed(value, "flags: %v", err)
	}

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.TraceFlags(flags[0]),
	}), nil
}

// decodeField decodes src into dst, accepting lowercase hex only.
func decodeField(dst []byte, src string) error {
	for i := 0; i < len(src); i++ {
		c := src[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return hex.InvalidByteError(c)
		}
	}
	_, err := hex.Decode(dst, []byte(src))
	return err
}
