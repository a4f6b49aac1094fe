package domain

import (
	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

// LineItem is one row of the cart: a product (or one configuration of a
// configurable product) plus its quantity.
type LineItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"` // Snapshot taken at add-time
	Quantity      int             `json:"quantity"`
	Image         string          `json:"image,omitempty"`
	Configuration *Configuration  `json:"configuration,omitempty"`
}

// Subtotal returns unitPrice * quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Equal reports whether two line items carry the same values. Prices are
// compared numerically so 199 and 199.00 are equal.
func (li LineItem) Equal(other LineItem) bool {
	if li.ID != other.ID || li.Name != other.Name || li.Quantity != other.Quantity || li.Image != other.Image {
		return false
	}
	if !li.UnitPrice.Equal(other.UnitPrice) {
		return false
	}
	return li.Configuration.Equal(other.Configuration)
}

// ConfigurationKind tags the product family a Configuration belongs to.
type ConfigurationKind string

const (
	ConfigurationJacket ConfigurationKind = "jacket"
)

// Configuration is the closed set of per-family option bags a line item can
// carry. Exactly one payload field is set, matching Kind.
type Configuration struct {
	Kind   ConfigurationKind    `json:"kind"`
	Jacket *JacketConfiguration `json:"jacket,omitempty"`
}

// NewJacketConfiguration wraps a jacket configuration for a line item.
func NewJacketConfiguration(cfg JacketConfiguration) *Configuration {
	return &Configuration{Kind: ConfigurationJacket, Jacket: &cfg}
}

func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ConfigurationJacket:
		if c.Jacket == nil || other.Jacket == nil {
			return c.Jacket == other.Jacket
		}
		return *c.Jacket == *other.Jacket
	default:
		return false
	}
}

// CartView is the read surface presentation layers consume.
type CartView struct {
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	IsOpen    bool            `json:"isOpen"`
}
