package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	mu.Lock()
	prev := log
	log = zap.New(core)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	})
	return logs
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFrom(ctx))
	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	t.Run("request context carries request_id", func(t *testing.T) {
		logs := withObservedLogger(t)

		ctx := WithRequestID(context.Background(), "req-9")
		FromCtx(ctx).Info("hello")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-9", logs.All()[0].ContextMap()["request_id"])
	})

	t.Run("bare context falls back to the process logger", func(t *testing.T) {
		logs := withObservedLogger(t)

		FromCtx(context.Background()).Info("hello")

		require.Equal(t, 1, logs.Len())
		assert.NotContains(t, logs.All()[0].ContextMap(), "request_id")
	})
}
