package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-quest/internal/config"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type failingStore struct {
	*InMemorySnapshotRepository
}

func (failingStore) Save(context.Context, string, domain.SnapshotKey, []byte) error {
	return errors.New("disk full")
}

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedSnapshotRepository_RedisDown(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rdb := deadRedis()
	defer rdb.Close()

	repo := NewCachedSnapshotRepository(NewInMemorySnapshotRepository(), rdb, zap.New(core))

	exerciseSnapshotStore(t, repo)

	assert.NotZero(t, logs.FilterMessage("redis read error").Len())
	assert.NotZero(t, logs.FilterMessage("redis set error").Len())
}

func TestCachedSnapshotRepository_SaveErrorPropagates(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()

	repo := NewCachedSnapshotRepository(failingStore{NewInMemorySnapshotRepository()}, rdb, nil)

	err := repo.Save(context.Background(), "p", domain.KeyPlayer, []byte(`{}`))

	assert.EqualError(t, err, "disk full")
}

func TestCachedSnapshotRepository_Integration(t *testing.T) {
	cfg := config.RedisConfig{Host: "localhost", Port: "6379", DB: 2}
	rdb, err := cache.NewRedisClient(cfg)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()
	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	backing := NewInMemorySnapshotRepository()
	repo := NewCachedSnapshotRepository(backing, rdb, zap.NewNop())

	exerciseSnapshotStore(t, repo)

	t.Run("Reads are served from cache after a write", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "cached", domain.KeyPlayer, []byte(`{"v":1}`)))
		require.NoError(t, backing.Delete(ctx, "cached"))

		data, err := repo.Load(ctx, "cached", domain.KeyPlayer)
		require.NoError(t, err)
		assert.Equal(t, `{"v":1}`, string(data))
	})

	t.Run("Delete invalidates cached documents", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "gone", domain.KeyPlayer, []byte(`{}`)))
		require.NoError(t, repo.Delete(ctx, "gone"))

		_, err := repo.Load(ctx, "gone", domain.KeyPlayer)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}
