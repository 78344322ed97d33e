package plancache

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"flipvault-web/storage"
)

// Factory hands out per-session caches over one shared backing store.
// Every cache shares a single mutex, which serializes all plan-record
// read-modify-write in this process.
type Factory struct {
	base    storage.Store
	fetcher PlanFetcher
	log     *zap.Logger
	mu      sync.Mutex
}

func NewFactory(base storage.Store, fetcher PlanFetcher, log *zap.Logger) *Factory {
	return &Factory{base: base, fetcher: fetcher, log: log}
}

// ForSession scopes the storage keys to one signed-in subject.
func (f *Factory) ForSession(subject string) *Cache {
	return &Cache{
		store:   storage.Namespaced(f.base, "sess:"+subject),
		fetcher: f.fetcher,
		log:     f.log,
		mu:      &f.mu,
		now:     time.Now,
	}
}

// GuardFor builds the route guard for one session.
func (f *Factory) GuardFor(subject string) *Guard {
	cache := f.ForSession(subject)
	return NewGuard(cache.store, cache)
}

// SessionStore exposes the namespaced store for handlers that manage
// session keys directly (login, logout, settings).
func (f *Factory) SessionStore(subject string) storage.Store {
	return storage.Namespaced(f.base, "sess:"+subject)
}
