package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level, tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core), tracing), logs
}

func spanContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	return trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestFieldsAndError(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel, false)
	boom := errors.New("boom")

	log.Error("call failed", boom, map[string]interface{}{"hop": "entrypoint"}, map[string]interface{}{"hop": "worker", "attempt": 1})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "call failed", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "worker", ctx["hop"], "later field maps override earlier ones")
	assert.EqualValues(t, 1, ctx["attempt"])
}

func TestLevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel, false)

	log.Debug("hidden", nil)
	log.Info("shown", nil)
	log.Warn("shown too", nil)

	assert.Equal(t, 2, logs.Len())
}

func TestWithContextAddsTraceFields(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel, true)
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext(t))

	log.InfoWithContext(ctx, "relayed", nil, map[string]interface{}{"status": 200})
	log.WarnWithContext(ctx, "slow", nil)
	log.ErrorWithContext(ctx, "failed", errors.New("x"))
	log.DebugWithContext(ctx, "detail", nil)

	require.Equal(t, 4, logs.Len())
	for _, entry := range logs.All() {
		fields := entry.ContextMap()
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	}
}

func TestWithContextTracingDisabled(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel, false)
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext(t))

	log.InfoWithContext(ctx, "relayed", nil)

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "span_id")
}

func TestWithContextWithoutSpan(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel, true)

	log.InfoWithContext(context.Background(), "no trace", nil)

	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestNewLoggerClient(t *testing.T) {
	log := NewLoggerClient(Config{Level: Debug, EnableTracing: true, ServiceName: "test"})

	require.NotNil(t, log.Zap)
	assert.True(t, log.tracingEnabled)
	assert.True(t, log.Zap.Core().Enabled(zapcore.DebugLevel))
}
