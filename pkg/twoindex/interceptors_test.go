package twoindex_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+":"+msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record("error", msg) }

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := twoindex.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *twoindex.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *twoindex.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(ctx, &twoindex.Request{Method: "GET", Path: "account"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	chain := twoindex.NewInterceptorChain()
	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *twoindex.Request) error {
		return errStop
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *twoindex.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &twoindex.Request{})
	require.ErrorIs(t, err, errStop)
	assert.False(t, called)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := twoindex.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddResponseInterceptor(func(ctx context.Context, req *twoindex.Request, resp *twoindex.Response) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddResponseInterceptor(func(ctx context.Context, req *twoindex.Request, resp *twoindex.Response) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteResponseInterceptors(ctx, &twoindex.Request{Method: "GET", Path: "project"}, &twoindex.Response{StatusCode: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := twoindex.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"X-Request-ID":    "123456",
	})
	req := &twoindex.Request{Method: "GET", Path: "account"}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "123456", req.Headers.Get("X-Request-ID"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	req := &twoindex.Request{Method: "POST", Path: "link/add"}

	require.NoError(t, twoindex.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, twoindex.LoggingResponseInterceptor(logger)(context.Background(), req, &twoindex.Response{StatusCode: 200}))
	require.NoError(t, twoindex.LoggingResponseInterceptor(logger)(context.Background(), req, &twoindex.Response{
		Error: &twoindex.NetworkError{Err: context.Canceled},
	}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.entries)
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := twoindex.NewMetricsCollector()

	var (
		notifiedEndpoint string
		notifiedMetrics  twoindex.Metrics
	)

	collector.SetOnChange(func(endpoint string, metrics twoindex.Metrics) {
		notifiedEndpoint = endpoint
		notifiedMetrics = metrics
	})

	requestInterceptor := twoindex.MetricsRequestInterceptor(collector)
	responseInterceptor := twoindex.MetricsResponseInterceptor(collector)

	ctx := context.Background()
	req := &twoindex.Request{Method: "GET", Path: "project"}

	require.NoError(t, requestInterceptor(ctx, req))

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, responseInterceptor(ctx, req, &twoindex.Response{StatusCode: 200}))

	assert.Equal(t, "GET project", notifiedEndpoint)
	assert.Equal(t, int64(1), notifiedMetrics.TotalRequests)
	assert.Equal(t, int64(0), notifiedMetrics.TotalErrors)
	assert.Positive(t, notifiedMetrics.AverageLatency)

	// A request that never went through the request interceptor has no start time.
	req2 := &twoindex.Request{Method: "GET", Path: "project"}
	require.NoError(t, responseInterceptor(ctx, req2, &twoindex.Response{StatusCode: 500}))

	metrics, ok := collector.GetMetrics("GET project")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.Equal(t, []string{"GET project"}, collector.Endpoints())

	_, ok = collector.GetMetrics("GET account")
	assert.False(t, ok)
}

func TestMetricsCollector_Concurrent(t *testing.T) {
	t.Parallel()

	collector := twoindex.NewMetricsCollector()
	responseInterceptor := twoindex.MetricsResponseInterceptor(collector)

	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = responseInterceptor(context.Background(), &twoindex.Request{Method: "GET", Path: "account"}, &twoindex.Response{StatusCode: 200})
		}()
	}

	wg.Wait()

	metrics, ok := collector.GetMetrics("GET account")
	require.True(t, ok)
	assert.Equal(t, int64(50), metrics.TotalRequests)
}
