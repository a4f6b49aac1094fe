package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"futur-backend/internal/cart"
	"futur-backend/internal/domain"
	"futur-backend/internal/infrastructure/cache"
	"futur-backend/internal/infrastructure/kvstore"
	"futur-backend/internal/pricing"
	kvrepo "futur-backend/internal/repository/kv"
	pkgcache "futur-backend/pkg/cache"
)

type fixture struct {
	kv        domain.KeyValueStore
	sessions  pkgcache.CacheService
	carts     *cart.Registry
	catalog   *pricing.Catalog
	calc      *pricing.Calculator
	products  domain.ProductRepository
	tracker   *fakeTracker
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := kvstore.NewMemory(cache.NewMemoryCache(time.Minute, time.Minute))
	catalog := pricing.DefaultCatalog()
	sessions := cache.NewMemoryCache(time.Minute, time.Minute)
	return &fixture{
		kv:        kv,
		sessions:  sessions,
		carts:     cart.NewRegistry(sessions, kv, time.Minute, time.Second),
		catalog:   catalog,
		calc:      pricing.NewCalculator(catalog),
		products:  kvrepo.NewProductRepository(catalog),
		tracker:   &fakeTracker{},
		publisher: &fakePublisher{},
	}
}

type fakeTracker struct {
	mu        sync.Mutex
	added     []domain.LineItem
	purchases []*domain.Order
}

func (f *fakeTracker) TrackAddToCart(_ context.Context, _ string, item domain.LineItem, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, item)
}

func (f *fakeTracker) TrackPurchase(_ context.Context, order *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases = append(f.purchases, order)
}

type fakePublisher struct {
	published []*domain.Order
	err       error
	onPublish func(ctx context.Context)
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	f.published = append(f.published, order)
	if f.onPublish != nil {
		f.onPublish(ctx)
	}
	return f.err
}

type failingOrderRepo struct{}

func (failingOrderRepo) CreateOrder(context.Context, *domain.Order) error {
	return domain.ErrStorageUnavailable
}

func (failingOrderRepo) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrStorageUnavailable
}

type fakeUploader struct {
	data        []byte
	contentType string
	err         error
}

func (f *fakeUploader) UploadBuffer(_ context.Context, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.data, f.contentType = data, contentType
	return "https://cdn.example.com/designs/x.webp", nil
}

var errBroker = errors.New("broker down")
