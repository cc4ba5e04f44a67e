package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/commodity-gate/internal/config"
)

func TestNewRedisDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewRedis(config.RedisConfig{}, zap.New(core))
	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	r.Close()

	notices := logs.FilterMessageSnippet("kept in memory").All()
	assert.Len(t, notices, 1)
}

func TestNewRedisPing(t *testing.T) {
	srv := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Addr: srv.Addr()}, zap.NewNop())
	defer r.Close()

	assert.True(t, r.Enabled())
	assert.NoError(t, r.Ping(context.Background()))
}
