package plancache

import (
	"context"

	"flipvault-web/storage"
)

// State is the route guard's state machine. A guarded request starts in
// Checking and must reach a terminal state before any protected content is
// rendered.
type State int

const (
	StateChecking State = iota
	StateAuthorized
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateAuthorized:
		return "authorized"
	case StateDenied:
		return "denied"
	default:
		return "checking"
	}
}

// Guard gates a protected view behind the entitlement check.
type Guard struct {
	store storage.Store
	cache *Cache
}

func NewGuard(store storage.Store, cache *Cache) *Guard {
	return &Guard{store: store, cache: cache}
}

// Check runs the entitlement protocol once. No session token means an
// immediate Denied with no network call. A false verdict also clears the
// cached plan data so the next check reconciles from the backend.
//
// If the context is cancelled before the check resolves, the result is
// discarded: Check returns Checking and writes nothing.
func (g *Guard) Check(ctx context.Context) State {
	if ctx.Err() != nil {
		return StateChecking
	}

	token, err := g.store.Get(ctx, storage.KeyToken)
	if err != nil || token == "" {
		return StateDenied
	}

	entitled := g.cache.GetEntitlement(ctx)
	if ctx.Err() != nil {
		return StateChecking
	}
	if entitled {
		return StateAuthorized
	}

	_ = g.cache.ClearPlanData(ctx)
	return StateDenied
}
