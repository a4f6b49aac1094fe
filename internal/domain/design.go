package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Design is a saved jacket configuration together with the price it was
// quoted at when saved.
type Design struct {
	ID            string              `json:"id"`
	Configuration JacketConfiguration `json:"configuration"`
	Price         decimal.Decimal     `json:"price"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type DesignRepository interface {
	SaveDesign(ctx context.Context, design *Design) error
	GetDesign(ctx context.Context, id string) (*Design, error)
}
