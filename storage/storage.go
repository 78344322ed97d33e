// Package storage holds the per-session client state that the browser
// used to keep in localStorage: session identity, the cached plan record,
// admin shadow plan records and the display currency.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned for keys that have never been set or were
// deleted.
var ErrNotFound = errors.New("storage: key not found")

// Well-known keys, matching the semantics of the original client state.
const (
	KeyUsername = "username"
	KeyToken    = "token"
	KeyPlanData = "planData"
	KeyCurrency = "currency"
)

// ShadowPlanPrefix groups the admin-edited plan records so logout can
// sweep them in one call.
const ShadowPlanPrefix = "user_"

// ShadowPlanKey scopes an admin-edited plan record to a user id.
func ShadowPlanKey(userID string) string {
	return ShadowPlanPrefix + userID + "_plan"
}

// Store is the storage port. Implementations must be safe for concurrent
// use; read-modify-write sequences are serialized by the callers.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Namespaced prefixes every key with a session subject so one shared
// backing store can hold state for many signed-in users.
func Namespaced(s Store, prefix string) Store {
	return &namespaced{inner: s, prefix: prefix + ":"}
}

type namespaced struct {
	inner  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.prefix + k
	}
	return n.inner.Delete(ctx, prefixed...)
}

func (n *namespaced) DeletePrefix(ctx context.Context, prefix string) error {
	return n.inner.DeletePrefix(ctx, n.prefix+prefix)
}
