package pricing

import (
	"futur-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Calculator prices jacket configurations against a catalog.
type Calculator struct {
	catalog *Catalog
}

func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

func (c *Calculator) Catalog() *Catalog {
	return c.catalog
}

// CalculatePrice returns base + material + size + back customization fee.
// It fails with domain.ErrInvalidConfiguration for an unknown style, a
// material outside the style, or an unknown size.
func (c *Calculator) CalculatePrice(cfg domain.JacketConfiguration) (decimal.Decimal, error) {
	q, err := c.Quote(cfg)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Total, nil
}

// Quote is CalculatePrice with the itemized breakdown.
func (c *Calculator) Quote(cfg domain.JacketConfiguration) (*domain.PriceBreakdown, error) {
	style, err := c.catalog.resolve(cfg)
	if err != nil {
		return nil, err
	}
	material, _ := style.Material(cfg.Material)
	sizePrice, _ := c.catalog.SizeSurcharge(cfg.Size)

	q := &domain.PriceBreakdown{
		Style:         style.Code,
		StyleLabel:    style.Label,
		BasePrice:     style.BasePrice,
		Material:      material.Code,
		MaterialLabel: material.Label,
		MaterialPrice: material.Surcharge,
		Size:          cfg.Size,
		SizePrice:     sizePrice,
		CustomPrice:   decimal.Zero,
		Currency:      c.catalog.Currency,
	}

	// design and text are mutually exclusive; design wins
	switch {
	case cfg.HasBackDesign():
		q.Customization = domain.CustomizationDesign
		q.CustomPrice = c.catalog.DesignFee
	case cfg.HasBackText():
		q.Customization = domain.CustomizationText
		q.CustomPrice = c.catalog.TextFee
	}

	q.Total = q.BasePrice.
		Add(q.MaterialPrice).
		Add(q.SizePrice).
		Add(q.CustomPrice).
		Round(2)
	return q, nil
}
