package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{ServiceName: "test"})
}

func TestCountersStartAtZero(t *testing.T) {
	m := newTestMetrics()

	assert.Equal(t, float64(0), testutil.ToFloat64(m.successTotal.WithLabelValues(HopWorker)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.failureTotal.WithLabelValues(HopWorker)))
}

func TestCountersByHop(t *testing.T) {
	m := newTestMetrics()

	m.IncrementSuccess(HopWorker)
	m.IncrementSuccess(HopWorker)
	m.IncrementSuccess(HopEntrypoint)
	m.IncrementFailure(HopEntrypoint)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.successTotal.WithLabelValues(HopWorker)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.successTotal.WithLabelValues(HopEntrypoint)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failureTotal.WithLabelValues(HopEntrypoint)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.failureTotal.WithLabelValues(HopWorker)))
}

func TestConcurrentIncrements(t *testing.T) {
	m := newTestMetrics()
	const n = 500

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementSuccess(HopWorker)
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(n), testutil.ToFloat64(m.successTotal.WithLabelValues(HopWorker)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.failureTotal.WithLabelValues(HopWorker)))
}

func TestRecordRequestDuration(t *testing.T) {
	m := newTestMetrics()

	m.RecordRequestDuration(time.Now().Add(-50*time.Millisecond), "/worker")
	m.RecordRequestDuration(time.Now(), "/entrypoint")

	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "relay-test", Namespace: "tracerelay"})
	m.IncrementSuccess(HopWorker)
	m.IncrementFailure(HopEntrypoint)

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `tracerelay_request_success_count{hop="worker",service="relay-test"} 1`)
	assert.Contains(t, body, `tracerelay_request_failure_count{hop="entrypoint",service="relay-test"} 1`)
}

func TestDefaultAddress(t *testing.T) {
	assert.Equal(t, DefaultMetricsAddress, newTestMetrics().Server.Addr)
	assert.Equal(t, ":9100", NewMetrics(Config{Address: ":9100"}).Server.Addr)
}

func TestDefaultCollectors(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test", EnableDefaultCollectors: true})

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
}

type pushGateway struct {
	server *httptest.Server
	pushes atomic.Int32
	mu     sync.Mutex
	paths  []string
	bodies []string
}

func newPushGateway(t *testing.T) *pushGateway {
	gw := &pushGateway{}
	gw.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gw.mu.Lock()
		gw.paths = append(gw.paths, r.Method+" "+r.URL.Path)
		gw.bodies = append(gw.bodies, string(body))
		gw.mu.Unlock()
		gw.pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(gw.server.Close)
	return gw
}

func nopLogger() *logger.LoggerClient {
	return logger.NewFromZap(zap.NewNop(), false)
}

func TestNewPusherDisabled(t *testing.T) {
	assert.Nil(t, NewPusher(Config{}, newTestMetrics(), nopLogger()))
}

func TestPusherFlush(t *testing.T) {
	gw := newPushGateway(t)
	m := newTestMetrics()
	m.IncrementSuccess(HopWorker)

	p := NewPusher(Config{PushURL: gw.server.URL, PushJob: "relay"}, m, nopLogger())
	require.NotNil(t, p)
	assert.Equal(t, defaultPushInterval, p.interval)

	require.NoError(t, p.Flush(context.Background()))

	require.Equal(t, int32(1), gw.pushes.Load())
	assert.Equal(t, "PUT /metrics/job/relay", gw.paths[0])
}

func TestPusherPeriodicAndFinalFlush(t *testing.T) {
	gw := newPushGateway(t)
	m := newTestMetrics()

	p := NewPusher(Config{PushURL: gw.server.URL, PushInterval: 10 * time.Millisecond}, m, nopLogger())
	p.Start()

	require.Eventually(t, func() bool { return gw.pushes.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	before := gw.pushes.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Stop(ctx))

	assert.Greater(t, gw.pushes.Load(), before, "Stop performs a final flush")
	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.True(t, strings.HasSuffix(gw.paths[0], "/metrics/job/tracerelay"))
}

func TestNewCounters(t *testing.T) {
	m := newTestMetrics()

	assert.Nil(t, NewCounters(Config{Enabled: false}, m))
	assert.Equal(t, Counters(m), NewCounters(Config{Enabled: true}, m))
}
