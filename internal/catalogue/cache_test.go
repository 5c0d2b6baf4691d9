package catalogue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	props []Property
	err   error
	calls int
}

func (s *countingStore) ListAll(ctx context.Context) ([]Property, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.props, nil
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCachedStore_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is served from redis", func(t *testing.T) {
		_, rdb := setupRedis(t)
		store := &countingStore{props: []Property{{ID: 1, Name: "Nile View", District: "Maadi"}}}
		cached := NewCachedStore(store, rdb, time.Minute)

		first, err := cached.ListAll(ctx)
		require.NoError(t, err)
		second, err := cached.ListAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "Nile View", second[0].Name)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		store := &countingStore{props: []Property{{ID: 1}}}
		cached := NewCachedStore(store, rdb, time.Minute)

		_, err := cached.ListAll(ctx)
		require.NoError(t, err)
		mr.FastForward(2 * time.Minute)
		_, err = cached.ListAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, store.calls)
	})

	t.Run("invalidate forces reload", func(t *testing.T) {
		_, rdb := setupRedis(t)
		store := &countingStore{props: []Property{{ID: 1}}}
		cached := NewCachedStore(store, rdb, time.Minute)

		_, err := cached.ListAll(ctx)
		require.NoError(t, err)
		require.NoError(t, cached.Invalidate(ctx))
		_, err = cached.ListAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, store.calls)
	})

	t.Run("store errors are returned", func(t *testing.T) {
		_, rdb := setupRedis(t)
		store := &countingStore{err: errors.New("db down")}
		cached := NewCachedStore(store, rdb, time.Minute)

		_, err := cached.ListAll(ctx)
		assert.EqualError(t, err, "db down")
	})

	t.Run("redis outage falls through to store", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		mr.Close()
		store := &countingStore{props: []Property{{ID: 7}}}
		cached := NewCachedStore(store, rdb, time.Minute)

		props, err := cached.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), props[0].ID)
	})
}
