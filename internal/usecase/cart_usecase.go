package usecase

import (
	"context"
	"errors"
	"fmt"

	"futur-backend/internal/cart"
	"futur-backend/internal/domain"
	"futur-backend/internal/pricing"
	"futur-backend/pkg/logger"
)

// CartUsecase drives a session's cart Store. Prices are resolved here, once,
// and frozen into the line item.
type CartUsecase struct {
	carts       *cart.Registry
	productRepo domain.ProductRepository
	calc        *pricing.Calculator
	tracker     domain.AnalyticsTracker
	maxQuantity int
}

func NewCartUsecase(carts *cart.Registry, productRepo domain.ProductRepository, calc *pricing.Calculator, tracker domain.AnalyticsTracker, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		productRepo: productRepo,
		calc:        calc,
		tracker:     tracker,
		maxQuantity: maxQuantity,
	}
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) domain.CartView {
	return u.carts.Get(ctx, sessionID).View()
}

// AddProduct adds quantity units of a catalog product at its current price.
func (u *CartUsecase) AddProduct(ctx context.Context, sessionID, productID string, quantity int) (domain.CartView, error) {
	if err := u.checkQuantity(quantity); err != nil {
		return domain.CartView{}, err
	}

	product, err := u.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CartView{}, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
		}
		return domain.CartView{}, err
	}

	item := domain.LineItem{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Image:     product.Image,
	}
	return u.add(ctx, sessionID, item)
}

// AddJacket prices a customized jacket and adds it as its own line. Two
// identical configurations share a line; any difference yields a new one.
func (u *CartUsecase) AddJacket(ctx context.Context, sessionID string, cfg domain.JacketConfiguration, quantity int) (domain.CartView, error) {
	if err := u.checkQuantity(quantity); err != nil {
		return domain.CartView{}, err
	}

	catalog := u.calc.Catalog()
	prepared, err := catalog.Prepare(cfg)
	if err != nil {
		return domain.CartView{}, err
	}
	price, err := u.calc.CalculatePrice(prepared)
	if err != nil {
		return domain.CartView{}, err
	}
	id, err := pricing.LineItemID(prepared)
	if err != nil {
		return domain.CartView{}, err
	}

	style, _ := catalog.Style(prepared.Style)
	item := domain.LineItem{
		ID:            id,
		Name:          style.Label,
		UnitPrice:     price,
		Quantity:      quantity,
		Image:         style.Image,
		Configuration: domain.NewJacketConfiguration(prepared),
	}
	return u.add(ctx, sessionID, item)
}

// UpdateQuantity sets a line's quantity; zero or less removes it and unknown
// ids are ignored.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (domain.CartView, error) {
	if quantity > u.maxQuantity {
		return domain.CartView{}, fmt.Errorf("%w: at most %d per line", domain.ErrInvalidQuantity, u.maxQuantity)
	}
	store := u.carts.Get(ctx, sessionID)
	store.UpdateQuantity(itemID, quantity)
	return logCartOp(ctx, "update", itemID, store.View()), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID, itemID string) domain.CartView {
	store := u.carts.Get(ctx, sessionID)
	store.RemoveItem(itemID)
	return logCartOp(ctx, "remove", itemID, store.View())
}

func (u *CartUsecase) Clear(ctx context.Context, sessionID string) domain.CartView {
	store := u.carts.Get(ctx, sessionID)
	store.Clear()
	return logCartOp(ctx, "clear", "", store.View())
}

func (u *CartUsecase) SetOpen(ctx context.Context, sessionID string, open bool) domain.CartView {
	store := u.carts.Get(ctx, sessionID)
	store.SetOpen(open)
	return store.View()
}

func (u *CartUsecase) add(ctx context.Context, sessionID string, item domain.LineItem) (domain.CartView, error) {
	store := u.carts.Get(ctx, sessionID)
	if err := store.AddItemWithin(item, u.maxQuantity); err != nil {
		return domain.CartView{}, err
	}

	if u.tracker != nil {
		u.tracker.TrackAddToCart(ctx, sessionID, item, u.calc.Catalog().Currency)
	}
	return logCartOp(ctx, "add", item.ID, store.View()), nil
}

func logCartOp(ctx context.Context, op, itemID string, view domain.CartView) domain.CartView {
	logger.CartOp(logger.WithContext(ctx), op, itemID, view.ItemCount, view.Total.StringFixed(2))
	return view
}

func (u *CartUsecase) checkQuantity(quantity int) error {
	if quantity < 0 || quantity > u.maxQuantity {
		return fmt.Errorf("%w: must be between 1 and %d", domain.ErrInvalidQuantity, u.maxQuantity)
	}
	return nil
}
