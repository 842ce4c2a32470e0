package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisTokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenStore(client)
}

func TestRedisRefreshRecordLifecycle(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()
	expires := time.Now().Add(24 * time.Hour).UTC()

	rec, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-1", expires)
	require.NoError(t, err)

	found, err := s.FindRefreshRecordByRotationID(ctx, "rot-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, "tokenhash", found.TokenHash)
	assert.Equal(t, "u1", found.UserID)

	_, err = s.FindRefreshRecordByRotationID(ctx, "rot-unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDeleteRefreshRecord(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	rec, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.DeleteRefreshRecord(ctx, rec.ID))
	_, err = s.FindRefreshRecordByRotationID(ctx, "rot-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown id is a no-op.
	require.NoError(t, s.DeleteRefreshRecord(ctx, "nope"))
}

func TestRedisConsumeRefreshRecords(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	n, err := s.ConsumeRefreshRecords(ctx, "rot-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.ConsumeRefreshRecords(ctx, "rot-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
