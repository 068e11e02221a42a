package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"arverify-node/internal/features/verification/service"
)

const keyPrefixVerified = "arverify:verified:"

// CacheStore is the subset of the go-redis client the registry cache needs.
type CacheStore interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedRegistry remembers positive registry answers. Attestations are never
// revoked, so only "verified" is cached; negative answers always hit the ledger.
type CachedRegistry struct {
	next   service.Registry
	store  CacheStore
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedRegistry(next service.Registry, store CacheStore, ttl time.Duration, logger zerolog.Logger) *CachedRegistry {
	return &CachedRegistry{next: next, store: store, ttl: ttl, logger: logger}
}

func (r *CachedRegistry) IsVerified(ctx context.Context, address string) (bool, error) {
	key := keyPrefixVerified + address

	n, err := r.store.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Warn().Err(err).Msg("Verified cache read failed")
	} else if n > 0 {
		return true, nil
	}

	verified, err := r.next.IsVerified(ctx, address)
	if err != nil || !verified {
		return verified, err
	}

	if err := r.store.Set(ctx, key, "1", r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("Verified cache write failed")
	}
	return true, nil
}
