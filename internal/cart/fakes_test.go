package cart

import (
	"context"
	"errors"
	"sync"

	"futur-backend/internal/domain"
)

// memKV is an in-memory domain.KeyValueStore that can be told to fail.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  error
	getErr  error
	setCall int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

var errDiskFull = errors.New("quota exceeded")

// recorder captures every snapshot a Store announces.
type recorder struct {
	calls [][]domain.LineItem
}

func (r *recorder) CartChanged(items []domain.LineItem) {
	r.calls = append(r.calls, items)
}
