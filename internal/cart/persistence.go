package cart

import (
	"context"
	"errors"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"
)

// DefaultKey is the durable key of the cart when no session is involved.
const DefaultKey = "cart"

// KeyFor returns the durable key of a session's cart.
func KeyFor(sessionID string) string {
	if sessionID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + sessionID
}

// Persister writes the full item list to a KeyValueStore after every
// mutation. Failures are logged and dropped: the in-memory cart stays
// authoritative for the session and nothing is retried.
type Persister struct {
	kv      domain.KeyValueStore
	key     string
	timeout time.Duration
}

func NewPersister(kv domain.KeyValueStore, key string, timeout time.Duration) *Persister {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Persister{kv: kv, key: key, timeout: timeout}
}

func (p *Persister) CartChanged(items []domain.LineItem) {
	data, err := Encode(items)
	if err != nil {
		logger.Warn().Err(err).Str("key", p.key).Msg("Cart: encode failed, skipping persist")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.kv.Set(ctx, p.key, data); err != nil {
		logger.Warn().Err(err).Str("key", p.key).Msg("Cart: persist failed, keeping in-memory state")
		return
	}
	logger.Debug().Str("key", p.key).Int("items", len(items)).Msg("Cart: persisted")
}

// Load hydrates a cart from durable storage. Absence, storage failure and
// malformed content all yield an empty cart.
func Load(ctx context.Context, kv domain.KeyValueStore, key string) []domain.LineItem {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn().Err(err).Str("key", key).Msg("Cart: hydrate read failed, starting empty")
		}
		return []domain.LineItem{}
	}

	items, err := Decode(data)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cart: discarding unreadable saved cart")
		return []domain.LineItem{}
	}
	return items
}

// Open hydrates the cart stored under key and returns a Store that persists
// back to the same key.
func Open(ctx context.Context, kv domain.KeyValueStore, key string, timeout time.Duration) *Store {
	return NewStore(Load(ctx, kv, key), NewPersister(kv, key, timeout))
}
