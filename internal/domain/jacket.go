package domain

import "github.com/shopspring/decimal"

type JacketStyle string
type MaterialCode string
type SizeCode string

// JacketConfiguration is the input of the pricing calculator and the payload
// of a customized jacket line item.
type JacketConfiguration struct {
	Style      JacketStyle  `json:"style"`
	Material   MaterialCode `json:"material"`
	Size       SizeCode     `json:"size"`
	Color      string       `json:"color,omitempty"`
	TextColor  string       `json:"textColor,omitempty"`
	BackDesign string       `json:"backDesign,omitempty"` // Image reference (URL or data URI)
	BackText   string       `json:"backText,omitempty"`
	Serial     string       `json:"serial,omitempty"`
}

func (c JacketConfiguration) HasBackDesign() bool { return c.BackDesign != "" }
func (c JacketConfiguration) HasBackText() bool   { return c.BackText != "" }

// Normalize applies the back customization rule: an uploaded design wins and
// clears any text. Serial numbers survive only when keepSerial is set.
func (c JacketConfiguration) Normalize(keepSerial bool) JacketConfiguration {
	if c.HasBackDesign() {
		c.BackText = ""
		c.TextColor = ""
	}
	if !keepSerial {
		c.Serial = ""
	}
	return c
}

// PriceBreakdown itemizes a jacket quote.
type PriceBreakdown struct {
	Style         JacketStyle     `json:"style"`
	StyleLabel    string          `json:"styleLabel"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Material      MaterialCode    `json:"material"`
	MaterialLabel string          `json:"materialLabel"`
	MaterialPrice decimal.Decimal `json:"materialPrice"`
	Size          SizeCode        `json:"size"`
	SizePrice     decimal.Decimal `json:"sizePrice"`
	Customization string          `json:"customization,omitempty"` // "design", "text" or empty
	CustomPrice   decimal.Decimal `json:"customizationPrice"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

// Customization kinds reported in PriceBreakdown.
const (
	CustomizationDesign = "design"
	CustomizationText   = "text"
)
