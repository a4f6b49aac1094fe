// Package kvstore holds the durable key/value backends carts, designs and
// orders are written to. Every backend satisfies domain.KeyValueStore.
package kvstore

import (
	"context"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/cache"
	"futur-backend/pkg/logger"
)

// Memory keeps values in the process cache. State is lost on restart.
type Memory struct {
	cache cache.CacheService
}

func NewMemory(c cache.CacheService) *Memory {
	return &Memory{cache: c}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, found := m.cache.Get(key)
	if !found {
		logger.StorageOp("memory", "get", key, time.Since(start), domain.ErrNotFound)
		return nil, domain.ErrNotFound
	}
	data, _ := v.([]byte)
	logger.StorageOp("memory", "get", key, time.Since(start), nil)
	return append([]byte(nil), data...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	start := time.Now()
	m.cache.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	logger.StorageOp("memory", "set", key, time.Since(start), nil)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
