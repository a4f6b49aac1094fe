package cart

import (
	"context"
	"sync"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/cache"
	"futur-backend/pkg/logger"
)

// Registry hands out the live Store of each cart session. Stores idle for
// longer than the TTL fall out of memory; their state is already persisted
// and is hydrated again on the next access.
type Registry struct {
	mu             sync.Mutex
	stores         cache.CacheService
	kv             domain.KeyValueStore
	idleTTL        time.Duration
	persistTimeout time.Duration
}

// NewRegistry takes ownership of stores; it must not be shared with other
// users because the registry installs its eviction hook on it.
func NewRegistry(stores cache.CacheService, kv domain.KeyValueStore, idleTTL, persistTimeout time.Duration) *Registry {
	r := &Registry{
		stores:         stores,
		kv:             kv,
		idleTTL:        idleTTL,
		persistTimeout: persistTimeout,
	}
	stores.OnEvicted(func(key string, _ any) {
		logger.Debug().Str("key", key).Int("active", stores.ItemCount()).Msg("Cart: session store released")
	})
	return r
}

// Active is the number of sessions currently held in memory.
func (r *Registry) Active() int {
	return r.stores.ItemCount()
}

// Get returns the session's Store, hydrating it on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	key := KeyFor(sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, found := r.stores.Get(key); found {
		if s, ok := v.(*Store); ok {
			r.stores.Set(key, s, r.idleTTL) // sliding expiry
			return s
		}
	}

	s := Open(ctx, r.kv, key, r.persistTimeout)
	r.stores.Set(key, s, r.idleTTL)
	logger.Debug().Str("key", key).Int("items", s.ItemCount()).Msg("Cart: session store opened")
	return s
}
