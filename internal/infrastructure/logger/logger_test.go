package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with json format", func(t *testing.T) {
		cfg := &Config{Level: "debug", Format: "json", Output: "stdout", TimeFormat: "2006-01-02"}
		log, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		cfg := &Config{Level: "verbose", Format: "console", Output: "stdout", TimeFormat: "2006-01-02"}
		log, err := New(cfg)
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})
}

func TestNewForEnvironment(t *testing.T) {
	log, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.NotNil(t, log)

	log, err = NewForEnvironment("development")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestContext(t *testing.T) {
	t.Run("FromContext returns noop when absent", func(t *testing.T) {
		log := FromContext(context.Background())
		assert.NotNil(t, log)
	})

	t.Run("round-trips logger through context", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("WithRequestID stores the ID", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})
}
