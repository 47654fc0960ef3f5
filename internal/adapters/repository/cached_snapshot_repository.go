package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

var _ domain.SnapshotStore = (*CachedSnapshotRepository)(nil)

const snapshotCacheTTL = 30 * time.Minute

// CachedSnapshotRepository is a write-through redis cache in front of a store.
// Cache failures are logged and never fail the call.
type CachedSnapshotRepository struct {
	next   domain.SnapshotStore
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedSnapshotRepository(next domain.SnapshotStore, cache *redis.Client, logger *zap.Logger) *CachedSnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSnapshotRepository{
		next:   next,
		cache:  cache,
		logger: logger.Named("cache"),
	}
}

func (r *CachedSnapshotRepository) cacheKey(playerID string, key domain.SnapshotKey) string {
	return fmt.Sprintf("snapshot:%s:%s", playerID, key)
}

func (r *CachedSnapshotRepository) Load(ctx context.Context, playerID string, key domain.SnapshotKey) ([]byte, error) {
	ck := r.cacheKey(playerID, key)

	val, err := r.cache.Get(ctx, ck).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.String("key", ck), zap.Error(err))
	}

	data, err := r.next.Load(ctx, playerID, key)
	if err != nil {
		return nil, err
	}

	r.store(ctx, ck, data)
	return data, nil
}

func (r *CachedSnapshotRepository) Save(ctx context.Context, playerID string, key domain.SnapshotKey, data []byte) error {
	if err := r.next.Save(ctx, playerID, key, data); err != nil {
		r.invalidate(ctx, r.cacheKey(playerID, key))
		return err
	}
	r.store(ctx, r.cacheKey(playerID, key), data)
	return nil
}

func (r *CachedSnapshotRepository) Delete(ctx context.Context, playerID string) error {
	keys := make([]string, 0, len(domain.SnapshotKeys))
	for _, k := range domain.SnapshotKeys {
		keys = append(keys, r.cacheKey(playerID, k))
	}
	defer r.invalidate(ctx, keys...)

	return r.next.Delete(ctx, playerID)
}

func (r *CachedSnapshotRepository) store(ctx context.Context, key string, data []byte) {
	if err := r.cache.Set(ctx, key, data, snapshotCacheTTL).Err(); err != nil {
		r.logger.Warn("redis set error", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedSnapshotRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("failed to invalidate", zap.Strings("keys", keys), zap.Error(err))
	}
}
