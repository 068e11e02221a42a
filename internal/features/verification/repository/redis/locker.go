package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"arverify-node/internal/features/verification/models"
)

const keyPrefixLock = "arverify:lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Store is the subset of the go-redis client the locker needs.
type Store interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Locker holds a per-address lock in Redis for ttl.
type Locker struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewLocker(store Store, ttl time.Duration, logger zerolog.Logger) *Locker {
	return &Locker{store: store, ttl: ttl, logger: logger}
}

func (l *Locker) Enabled() bool { return true }

// Acquire returns models.ErrLocked when another holder owns the address.
func (l *Locker) Acquire(ctx context.Context, address string) (func(context.Context), error) {
	key := keyPrefixLock + address
	token := uuid.NewString()

	ok, err := l.store.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, models.ErrLocked
	}

	return func(ctx context.Context) {
		if err := l.store.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.logger.Warn().Err(err).Str("address", address).Msg("Failed to release lock")
		}
	}, nil
}
