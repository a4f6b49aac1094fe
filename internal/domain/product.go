package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Gender      string          `json:"gender"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	URL         string          `json:"url,omitempty"`
	Description string          `json:"description"`
}

type ProductFilter struct {
	Gender string
}

// ProductRepository serves the static storefront catalog.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}
