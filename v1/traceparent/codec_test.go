package traceparent

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const sampleHeader = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func sampleSpanContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
}

func TestEncode(t *testing.T) {
	carrier := Encode(sampleSpanContext(t))

	assert.Equal(t, propagation.MapCarrier{HeaderTraceParent: sampleHeader}, carrier)
}

func TestEncodeInvalidTraceID(t *testing.T) {
	carrier := Encode(trace.SpanContext{})

	assert.Empty(t, carrier)
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	sc := sampleSpanContext(t)
	before := sc

	_ = Encode(sc)

	assert.True(t, before.Equal(sc))
}

func TestDecode(t *testing.T) {
	sc, err := Decode(propagation.MapCarrier{HeaderTraceParent: sampleHeader})

	require.NoError(t, err)
	assert.True(t, sc.Equal(sampleSpanContext(t)))
	assert.False(t, sc.IsRemote())
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 1000; i++ {
		var traceID trace.TraceID
		var spanID trace.SpanID
		for j := range traceID {
			traceID[j] = byte(r.IntN(256))
		}
		for j := range spanID {
			spanID[j] = byte(r.IntN(256))
		}
		if !traceID.IsValid() {
			continue
		}
		// a zero span-id is a legal "no parent" context and must survive as well
		if i%10 == 0 {
			spanID = trace.SpanID{}
		}
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.TraceFlags(r.IntN(256)),
		})

		decoded, err := Decode(Encode(sc))

		require.NoError(t, err)
		require.True(t, sc.Equal(decoded), "round trip of %s", Format(sc))
	}
}

func TestDecodeAbsent(t *testing.T) {
	tests := []struct {
		name    string
		carrier propagation.TextMapCarrier
	}{
		{name: "empty map", carrier: propagation.MapCarrier{}},
		{name: "other keys only", carrier: propagation.MapCarrier{"tracestate": "vendor=1", "x-request-id": "abc"}},
		{name: "empty value", carrier: propagation.MapCarrier{HeaderTraceParent: ""}},
		{name: "empty http header", carrier: propagation.HeaderCarrier(http.Header{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Decode(tt.carrier)

			require.NoError(t, err)
			assert.False(t, sc.TraceID().IsValid())
			assert.True(t, sc.Equal(trace.SpanContext{}))
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "truncated", value: sampleHeader[:40]},
		{name: "too long", value: sampleHeader + "-00"},
		{name: "non hex trace-id", value: "00-4bf92f3577b34da6a3ce929d0e0e473z-00f067aa0ba902b7-01"},
		{name: "non hex span-id", value: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902bx-01"},
		{name: "non hex flags", value: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-0g"},
		{name: "uppercase hex", value: "00-4BF92F3577B34DA6A3CE929D0E0E4736-00f067aa0ba902b7-01"},
		{name: "unsupported version", value: "01-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
		{name: "forbidden version", value: "ff-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
		{name: "zero trace-id", value: "00-00000000000000000000000000000000-00f067aa0ba902b7-01"},
		{name: "wrong delimiter", value: "00_4bf92f3577b34da6a3ce929d0e0e4736_00f067aa0ba902b7_01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Decode(propagation.MapCarrier{HeaderTraceParent: tt.value})

			require.Error(t, err)
			assert.True(t, IsMalformed(err))
			assert.True(t, errors.Is(err, ErrMalformedContext))
			assert.False(t, sc.IsValid())

			var malformedErr *MalformedError
			require.True(t, errors.As(err, &malformedErr))
			assert.Equal(t, tt.value, malformedErr.Value)
			assert.NotEmpty(t, malformedErr.Reason)
		})
	}
}

func TestDecodeZeroSpanIDJoinsTrace(t *testing.T) {
	sc, err := Decode(propagation.MapCarrier{
		HeaderTraceParent: "00-4bf92f3577b34da6a3ce929d0e0e4736-0000000000000000-01",
	})

	require.NoError(t, err)
	assert.True(t, sc.TraceID().IsValid())
	assert.False(t, sc.SpanID().IsValid())
}

func TestDecodeIgnoresExtraKeys(t *testing.T) {
	sc, err := Decode(propagation.MapCarrier{
		HeaderTraceParent: sampleHeader,
		"tracestate":      "congo=t61rcWkgMzE",
		"x-custom":        "1",
	})

	require.NoError(t, err)
	assert.True(t, sc.Equal(sampleSpanContext(t)))
}

func TestInjectMergesIntoHTTPHeader(t *testing.T) {
	header := http.Header{}
	header.Set("Accept", "text/plain")
	header.Set("Traceparent", "00-11111111111111111111111111111111-2222222222222222-00")

	Inject(sampleSpanContext(t), propagation.HeaderCarrier(header))

	assert.Equal(t, "text/plain", header.Get("Accept"))
	assert.Equal(t, sampleHeader, header.Get(HeaderTraceParent))
	assert.Len(t, header.Values(HeaderTraceParent), 1)

	sc, err := Decode(propagation.HeaderCarrier(header))
	require.NoError(t, err)
	assert.True(t, sc.Equal(sampleSpanContext(t)))
}

func BenchmarkEncode(b *testing.B) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Encode(sc)
	}
}

func BenchmarkDecode(b *testing.B) {
	carrier := propagation.MapCarrier{HeaderTraceParent: sampleHeader}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(carrier)
	}
}
