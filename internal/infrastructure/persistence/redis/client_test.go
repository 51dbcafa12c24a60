package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	t.Run("未启用时返回nil", func(t *testing.T) {
		client, cleanup, err := NewClient(&config.Config{}, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, client)
		cleanup()
	})

	t.Run("连接miniredis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		cfg := &config.Config{Redis: config.RedisConfig{
			Enabled: true,
			Host:    mr.Host(),
			Port:    port,
		}}

		client, cleanup, err := NewClient(cfg, zap.NewNop())
		require.NoError(t, err)
		defer cleanup()

		require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("连接失败", func(t *testing.T) {
		cfg := &config.Config{Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}}
		_, _, err := NewClient(cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
