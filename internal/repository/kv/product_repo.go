package kvrepo

import (
	"context"
	"strings"

	"futur-backend/internal/domain"
)

// ProductSource lists the products of a loaded catalog.
type ProductSource interface {
	Products() []domain.Product
}

// productRepository serves products straight from the catalog; they are
// read-only and never hit the key/value store.
type productRepository struct {
	source ProductSource
}

func NewProductRepository(source ProductSource) domain.ProductRepository {
	return &productRepository{source: source}
}

func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	all := r.source.Products()
	if filter.Gender == "" {
		return all, nil
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Gender, filter.Gender) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range r.source.Products() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}
