package kvrepo

import (
	"context"
	"fmt"

	"futur-backend/internal/domain"
)

type orderRepository struct {
	kv domain.KeyValueStore
}

func NewOrderRepository(kv domain.KeyValueStore) domain.OrderRepository {
	return &orderRepository{kv: kv}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		return fmt.Errorf("order id is required")
	}
	return putJSON(ctx, r.kv, orderPrefix+order.ID, order)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := getJSON(ctx, r.kv, orderPrefix+id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
