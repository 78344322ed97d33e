package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, KeyUsername)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyUsername, "alice"))
	v, err := store.Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	require.NoError(t, store.Delete(ctx, KeyUsername))
	_, err = store.Get(ctx, KeyUsername)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteMany(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Set(ctx, KeyUsername, "alice"))
	require.NoError(t, store.Set(ctx, KeyToken, "tok"))
	require.NoError(t, store.Set(ctx, KeyCurrency, "EUR"))

	require.NoError(t, store.Delete(ctx, KeyUsername, KeyToken, "never-set"))

	_, err := store.Get(ctx, KeyUsername)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := store.Get(ctx, KeyCurrency)
	require.NoError(t, err)
	assert.Equal(t, "EUR", v)
}

func TestNamespacedIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	alice := Namespaced(backing, "sess:alice")
	bob := Namespaced(backing, "sess:bob")

	require.NoError(t, alice.Set(ctx, KeyPlanData, `{"plan":"Pro"}`))

	_, err := bob.Get(ctx, KeyPlanData)
	assert.ErrorIs(t, err, ErrNotFound, "sessions must not see each other's state")

	v, err := alice.Get(ctx, KeyPlanData)
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"Pro"}`, v)

	// The backing store sees the prefixed key.
	v, err = backing.Get(ctx, "sess:alice:"+KeyPlanData)
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"Pro"}`, v)
}

func TestNamespacedDelete(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	alice := Namespaced(backing, "sess:alice")
	require.NoError(t, alice.Set(ctx, KeyToken, "tok"))

	require.NoError(t, alice.Delete(ctx, KeyToken))
	_, err := alice.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShadowPlanKey(t *testing.T) {
	assert.Equal(t, "user_42_plan", ShadowPlanKey("42"))
}

func TestMemoryDeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Set(ctx, ShadowPlanKey("1"), "a"))
	require.NoError(t, store.Set(ctx, ShadowPlanKey("2"), "b"))
	require.NoError(t, store.Set(ctx, KeyUsername, "alice"))

	require.NoError(t, store.DeletePrefix(ctx, ShadowPlanPrefix))

	_, err := store.Get(ctx, ShadowPlanKey("1"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, ShadowPlanKey("2"))
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := store.Get(ctx, KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestNamespacedDeletePrefixIsScoped(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	alice := Namespaced(backing, "sess:alice")
	bob := Namespaced(backing, "sess:bob")
	require.NoError(t, alice.Set(ctx, ShadowPlanKey("1"), "a"))
	require.NoError(t, bob.Set(ctx, ShadowPlanKey("1"), "b"))

	require.NoError(t, alice.DeletePrefix(ctx, ShadowPlanPrefix))

	_, err := alice.Get(ctx, ShadowPlanKey("1"))
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := bob.Get(ctx, ShadowPlanKey("1"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}
