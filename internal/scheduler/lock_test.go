package scheduler

import (
	"context"
	"testing"
	"time"

	"exchange-ledger/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockStore(t *testing.T) (*miniredis.Miniredis, *redis.LockStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewLockStore(client)
}

func TestNewRedisLock_Validation(t *testing.T) {
	_, store := newLockStore(t)

	_, err := NewRedisLock(nil, "k", time.Minute)
	assert.Error(t, err)
	_, err = NewRedisLock(store, "", time.Minute)
	assert.Error(t, err)

	lock, err := NewRedisLock(store, "k", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultLockTTL, lock.ttl)
}

func TestRedisLock_MutualExclusion(t *testing.T) {
	mr, store := newLockStore(t)
	ctx := context.Background()

	a, err := NewRedisLock(store, "exl:scheduler:lock", 10*time.Minute)
	require.NoError(t, err)
	b, err := NewRedisLock(store, "exl:scheduler:lock", 10*time.Minute)
	require.NoError(t, err)

	ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10*time.Minute, mr.TTL("exl:scheduler:lock"))

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// b never held it, so its release is a no-op.
	require.NoError(t, b.Release(ctx))
	assert.True(t, mr.Exists("exl:scheduler:lock"))

	require.NoError(t, a.Release(ctx))
	assert.False(t, mr.Exists("exl:scheduler:lock"))

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLock_ReleaseAfterExpiryKeepsNewOwner(t *testing.T) {
	mr, store := newLockStore(t)
	ctx := context.Background()

	a, err := NewRedisLock(store, "exl:scheduler:lock", time.Minute)
	require.NoError(t, err)
	b, err := NewRedisLock(store, "exl:scheduler:lock", time.Minute)
	require.NoError(t, err)

	ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, a.Release(ctx))
	assert.True(t, mr.Exists("exl:scheduler:lock"), "stale holder must not delete the new owner's lock")
}

func TestRedisLock_ReleaseWhenKeyGone(t *testing.T) {
	mr, store := newLockStore(t)
	ctx := context.Background()

	lock, err := NewRedisLock(store, "exl:scheduler:lock", time.Minute)
	require.NoError(t, err)
	ok, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.Del("exl:scheduler:lock")
	assert.NoError(t, lock.Release(ctx))
}
