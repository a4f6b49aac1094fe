package cart

import (
	"fmt"

	"futur-backend/internal/domain"

	"github.com/goccy/go-json"
)

// Encode renders the item list in its durable form: a JSON array of line
// items. An empty cart encodes as [].
func Encode(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a durable item list. Content that is not a JSON array of
// line items, or that breaks the cart invariants, fails with
// domain.ErrDeserialization.
func Decode(data []byte) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeserialization, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: not an item list", domain.ErrDeserialization)
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		switch {
		case it.ID == "":
			return nil, fmt.Errorf("%w: item %d has no id", domain.ErrDeserialization, i)
		case it.Quantity < 1:
			return nil, fmt.Errorf("%w: item %q has quantity %d", domain.ErrDeserialization, it.ID, it.Quantity)
		case it.UnitPrice.IsNegative():
			return nil, fmt.Errorf("%w: item %q has a negative price", domain.ErrDeserialization, it.ID)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", domain.ErrDeserialization, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}
