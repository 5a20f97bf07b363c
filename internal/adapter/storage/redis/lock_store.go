package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LockStore exposes the plain-value Redis operations the scheduler's
// distributed lock needs.
type LockStore struct {
	client goredis.UniversalClient
}

// NewLockStore wraps client for use by scheduler.RedisLock.
func NewLockStore(client goredis.UniversalClient) *LockStore {
	return &LockStore{client: client}
}

// SetNX sets key to value with ttl only if key is absent.
func (s *LockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

// Get returns the value at key. A missing key yields goredis.Nil.
func (s *LockStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

// Del removes keys.
func (s *LockStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}
