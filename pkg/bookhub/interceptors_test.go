package bookhub_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBlocked = errors.New("blocked")

func TestInterceptorChain(t *testing.T) {
	t.Parallel()

	var order []string

	chain := bookhub.NewInterceptorChain().
		AddRequestInterceptor(func(ctx context.Context, req *bookhub.Request) error {
			order = append(order, "first")

			return nil
		}).
		AddRequestInterceptor(func(ctx context.Context, req *bookhub.Request) error {
			order = append(order, "second")

			return errBlocked
		}).
		AddRequestInterceptor(func(ctx context.Context, req *bookhub.Request) error {
			order = append(order, "third")

			return nil
		})

	err := chain.ExecuteRequestInterceptors(context.Background(), &bookhub.Request{})
	require.ErrorIs(t, err, errBlocked)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRequestIDInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := bookhub.RequestIDInterceptor()

	req := &bookhub.Request{}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Len(t, req.Headers.Get(bookhub.RequestIDHeader), 36)

	preset := &bookhub.Request{Headers: http.Header{bookhub.RequestIDHeader: {"fixed"}}}
	require.NoError(t, interceptor(context.Background(), preset))
	assert.Equal(t, "fixed", preset.Headers.Get(bookhub.RequestIDHeader))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &bookhub.Request{}
	require.NoError(t, bookhub.HeaderInterceptor(map[string]string{"X-Branch": "2"})(context.Background(), req))
	assert.Equal(t, "2", req.Headers.Get("X-Branch"))
}

func TestRateLimitInterceptor_ContextCancelled(t *testing.T) {
	t.Parallel()

	interceptor := bookhub.RateLimitInterceptor(0.001, 1)

	require.NoError(t, interceptor(context.Background(), &bookhub.Request{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, interceptor(ctx, &bookhub.Request{}))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := bookhub.NewLogrusLogger(base)
	ctx := context.Background()
	req := &bookhub.Request{Method: http.MethodGet, Path: "/api/v1/admin/policies", Headers: http.Header{}}

	require.NoError(t, bookhub.LoggingInterceptor(logger)(ctx, req))
	require.NoError(t, bookhub.LoggingResponseInterceptor(logger)(ctx, req, &bookhub.Response{StatusCode: http.StatusOK}))
	require.NoError(t, bookhub.LoggingResponseInterceptor(logger)(ctx, req, &bookhub.Response{Error: errBlocked}))

	output := buf.String()
	assert.Contains(t, output, `"msg":"API Request"`)
	assert.Contains(t, output, `"msg":"API Response"`)
	assert.Contains(t, output, `"level":"error"`)
	assert.Contains(t, output, `"duration"`)
}

func TestLoggerOrNop(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bookhub.NopLogger{}, bookhub.LoggerOrNop(nil))

	logger := bookhub.NewLogrusLogger(nil)
	assert.Same(t, logger, bookhub.LoggerOrNop(logger))
}
