package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipvault-web/config"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedis(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(context.Background()))
	return store
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedis(t)

	_, err := store.Get(ctx, KeyPlanData)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyPlanData, `{"plan":"Pro"}`))
	v, err := store.Get(ctx, KeyPlanData)
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"Pro"}`, v)

	require.NoError(t, store.Delete(ctx, KeyPlanData))
	_, err = store.Get(ctx, KeyPlanData)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDeleteMany(t *testing.T) {
	ctx := context.Background()
	store := newTestRedis(t)
	require.NoError(t, store.Set(ctx, KeyUsername, "alice"))
	require.NoError(t, store.Set(ctx, KeyToken, "tok"))

	require.NoError(t, store.Delete(ctx, KeyUsername, KeyToken))

	_, err := store.Get(ctx, KeyUsername)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx))
}

func TestRedisDeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestRedis(t)
	require.NoError(t, store.Set(ctx, "sess:alice:"+ShadowPlanKey("1"), "a"))
	require.NoError(t, store.Set(ctx, "sess:alice:"+ShadowPlanKey("2"), "b"))
	require.NoError(t, store.Set(ctx, "sess:bob:"+ShadowPlanKey("1"), "keep"))

	require.NoError(t, store.DeletePrefix(ctx, "sess:alice:"+ShadowPlanPrefix))

	_, err := store.Get(ctx, "sess:alice:"+ShadowPlanKey("1"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "sess:alice:"+ShadowPlanKey("2"))
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := store.Get(ctx, "sess:bob:"+ShadowPlanKey("1"))
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
}
