package cache

import "time"

// CacheService is the in-process cache used for live cart sessions, catalog
// listings and the memory key/value backend.
type CacheService interface {
	// Get returns the value and true when present and not expired.
	Get(key string) (any, bool)

	// Set stores value for duration. A zero duration uses the default
	// expiration; NoExpiration keeps the entry until deleted.
	Set(key string, value any, duration time.Duration)

	Delete(key string)

	// Flush removes all items
	Flush()

	ItemCount() int

	// OnEvicted registers fn to run after an entry expires or is deleted.
	OnEvicted(fn func(key string, value any))
}

// NoExpiration marks entries that never expire.
const NoExpiration time.Duration = -1
