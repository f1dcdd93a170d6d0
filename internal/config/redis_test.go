package config

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		client, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
