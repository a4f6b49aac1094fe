package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/internal/pricing"
	"futur-backend/pkg/cache"
)

type CatalogUsecase struct {
	repo     domain.ProductRepository
	calc     *pricing.Calculator
	cache    cache.CacheService
	cacheTTL time.Duration
}

func NewCatalogUsecase(repo domain.ProductRepository, calc *pricing.Calculator, cache cache.CacheService, cacheTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		repo:     repo,
		calc:     calc,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (uc *CatalogUsecase) ListProducts(ctx context.Context, gender string) ([]domain.Product, error) {
	gender = strings.ToLower(strings.TrimSpace(gender))
	cacheKey := fmt.Sprintf("products:gender:%s", gender)
	if cached, found := uc.cache.Get(cacheKey); found {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, err := uc.repo.ListProducts(ctx, domain.ProductFilter{Gender: gender})
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, products, uc.cacheTTL)
	return products, nil
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.repo.GetProductByID(ctx, id)
}

// JacketCatalog exposes styles, materials, sizes and fees for the customizer.
func (uc *CatalogUsecase) JacketCatalog() *pricing.Catalog {
	return uc.calc.Catalog()
}

// Quote validates cfg and itemizes its price.
func (uc *CatalogUsecase) Quote(cfg domain.JacketConfiguration) (*domain.PriceBreakdown, error) {
	prepared, err := uc.calc.Catalog().Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return uc.calc.Quote(prepared)
}
