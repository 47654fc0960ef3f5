package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/config"
)

func testRedisConfig() config.RedisConfig {
	_ = godotenv.Load("../../../.env")

	cfg := config.RedisConfig{Host: "localhost", Port: "6379", Password: os.Getenv("REDIS_PASSWORD"), DB: 1}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Port = v
	}
	return cfg
}

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 2})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 10, opts.PoolSize)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	rdb, err := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: "1"})

	assert.Nil(t, rdb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestRedisClient_Integration(t *testing.T) {
	rdb, err := NewRedisClient(testRedisConfig())
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	t.Run("Success: Snapshot payload round trip", func(t *testing.T) {
		key := "snapshot:player-1:player-data"
		payload := []byte(`{"version":1,"data":{"level":3}}`)

		require.NoError(t, rdb.Set(ctx, key, payload, time.Minute).Err())

		got, err := rdb.Get(ctx, key).Bytes()
		require.NoError(t, err)
		assert.JSONEq(t, string(payload), string(got))
	})

	t.Run("Edge Case: Snapshot entries expire", func(t *testing.T) {
		key := "snapshot:player-2:achievements"
		require.NoError(t, rdb.Set(ctx, key, "{}", time.Second).Err())

		assert.Eventually(t, func() bool {
			return rdb.Get(ctx, key).Err() == redis.Nil
		}, 3*time.Second, 100*time.Millisecond)
	})
}
