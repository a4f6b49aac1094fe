package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// --- Order Entities ---

type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type Order struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"sessionId,omitempty"`
	Status        string          `json:"status"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	ItemCount     int             `json:"itemCount"`
	Currency      string          `json:"currency"`
	Shipping      ShippingInfo    `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// --- Interfaces ---

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
}

// OrderPublisher announces placed orders to downstream consumers.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *Order) error
}
