// Package kvrepo implements the domain repositories on top of a
// domain.KeyValueStore, one JSON document per entity.
package kvrepo

import (
	"context"
	"errors"
	"fmt"

	"futur-backend/internal/domain"

	"github.com/goccy/go-json"
)

const (
	designPrefix = "design:"
	orderPrefix  = "order:"
)

func getJSON(ctx context.Context, kv domain.KeyValueStore, key string, dst interface{}) error {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDeserialization, key, err)
	}
	return nil
}

func putJSON(ctx context.Context, kv domain.KeyValueStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
