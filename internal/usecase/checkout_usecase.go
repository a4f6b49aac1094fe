package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"futur-backend/internal/cart"
	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"
)

type CheckoutRequest struct {
	Shipping      domain.ShippingInfo `json:"shipping"`
	PaymentMethod string              `json:"paymentMethod"`
}

type CheckoutUsecase struct {
	carts     *cart.Registry
	orderRepo domain.OrderRepository
	publisher domain.OrderPublisher
	tracker   domain.AnalyticsTracker
	currency  string
}

func NewCheckoutUsecase(carts *cart.Registry, orderRepo domain.OrderRepository, publisher domain.OrderPublisher, tracker domain.AnalyticsTracker, currency string) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:     carts,
		orderRepo: orderRepo,
		publisher: publisher,
		tracker:   tracker,
		currency:  currency,
	}
}

// Checkout turns the session's cart into an order and empties the cart. The
// order keeps the unit prices the cart was holding.
func (u *CheckoutUsecase) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error) {
	shipping, err := normalizeShipping(req.Shipping)
	if err != nil {
		return nil, err
	}
	method, err := normalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	store := u.carts.Get(ctx, sessionID)
	view := store.View()
	if len(view.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		ID:            utils.GenerateUUID(),
		SessionID:     sessionID,
		Status:        domain.OrderStatusPending,
		Items:         view.Items,
		TotalAmount:   view.Total.Round(2),
		ItemCount:     view.ItemCount,
		Currency:      u.currency,
		Shipping:      shipping,
		PaymentMethod: method,
		CreatedAt:     time.Now().UTC(),
	}

	if err := u.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	// Only what was ordered leaves the cart; concurrent adds survive.
	store.Deduct(order.Items)
	store.SetOpen(false)

	log := logger.WithContext(ctx)
	if err := u.publisher.PublishOrderPlaced(ctx, order); err != nil {
		// the order is stored; downstream can replay from storage
		log.Error().Err(err).Str("order_id", order.ID).Msg("Usecase: order.placed publish failed")
	}
	if u.tracker != nil {
		u.tracker.TrackPurchase(ctx, order)
	}

	log.Info().
		Str("order_id", order.ID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Int("items", order.ItemCount).
		Msg("Usecase: order placed")
	return order, nil
}

// GetOrder returns an order placed from the same cart session.
func (u *CheckoutUsecase) GetOrder(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func normalizeShipping(s domain.ShippingInfo) (domain.ShippingInfo, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.Zip = strings.TrimSpace(s.Zip)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", s.Name}, {"email", s.Email}, {"address", s.Address}, {"city", s.City}, {"zip", s.Zip},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("%w: missing %s", domain.ErrInvalidCheckout, strings.Join(missing, ", "))
	}
	if addr, err := mail.ParseAddress(s.Email); err != nil || addr.Address != s.Email {
		return s, fmt.Errorf("%w: invalid email", domain.ErrInvalidCheckout)
	}
	return s, nil
}

func normalizePaymentMethod(m string) (string, error) {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		return domain.PaymentMethodCard, nil
	}
	for _, known := range domain.PaymentMethods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidCheckout, m)
}
