package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"unicode/utf8"

	"futur-backend/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile mirrors catalog.yaml. Amounts are kept as strings so they are
// parsed exactly into decimals.
type catalogFile struct {
	Currency          string        `yaml:"currency"`
	DesignFee         string        `yaml:"designFee"`
	TextFee           string        `yaml:"textFee"`
	MaxBackTextLength int           `yaml:"maxBackTextLength"`
	MaxSerialLength   int           `yaml:"maxSerialLength"`
	Sizes             []sizeEntry   `yaml:"sizes"`
	Styles            []styleEntry  `yaml:"styles"`
	Products          []productItem `yaml:"products"`
}

type sizeEntry struct {
	Code      string `yaml:"code"`
	Surcharge string `yaml:"surcharge"`
}

type styleEntry struct {
	Code         string          `yaml:"code"`
	Label        string          `yaml:"label"`
	BasePrice    string          `yaml:"basePrice"`
	Image        string          `yaml:"image"`
	SerialNumber bool            `yaml:"serialNumber"`
	Materials    []materialEntry `yaml:"materials"`
}

type materialEntry struct {
	Code      string `yaml:"code"`
	Label     string `yaml:"label"`
	Surcharge string `yaml:"surcharge"`
}

type productItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Gender      string `yaml:"gender"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// SizeOption is one entry of the fixed size list.
type SizeOption struct {
	Code      domain.SizeCode `json:"code"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// MaterialOption is a material allowed for a style.
type MaterialOption struct {
	Code      domain.MaterialCode `json:"code"`
	Label     string              `json:"label"`
	Surcharge decimal.Decimal     `json:"surcharge"`
}

// Style is a catalog jacket style with its allowed materials.
type Style struct {
	Code         domain.JacketStyle `json:"code"`
	Label        string             `json:"label"`
	BasePrice    decimal.Decimal    `json:"basePrice"`
	Image        string             `json:"image"`
	SerialNumber bool               `json:"serialNumber"`
	Materials    []MaterialOption   `json:"materials"`

	materials map[domain.MaterialCode]MaterialOption
}

// Material looks up a material allowed for this style.
func (s Style) Material(code domain.MaterialCode) (MaterialOption, bool) {
	m, ok := s.materials[code]
	return m, ok
}

// Catalog is the immutable jacket and product catalog.
type Catalog struct {
	Currency          string          `json:"currency"`
	DesignFee         decimal.Decimal `json:"designFee"`
	TextFee           decimal.Decimal `json:"textFee"`
	MaxBackTextLength int             `json:"maxBackTextLength"`
	MaxSerialLength   int             `json:"maxSerialLength"`
	Styles            []Style         `json:"styles"`
	Sizes             []SizeOption    `json:"sizes"`

	products []domain.Product
	styles   map[domain.JacketStyle]Style
	sizes    map[domain.SizeCode]decimal.Decimal
}

// LoadCatalog reads the catalog from path, or the embedded default when path
// is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		Currency:          f.Currency,
		MaxBackTextLength: f.MaxBackTextLength,
		MaxSerialLength:   f.MaxSerialLength,
		styles:            make(map[domain.JacketStyle]Style, len(f.Styles)),
		sizes:             make(map[domain.SizeCode]decimal.Decimal, len(f.Sizes)),
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}

	var err error
	if c.DesignFee, err = parseAmount("designFee", f.DesignFee); err != nil {
		return nil, err
	}
	if c.TextFee, err = parseAmount("textFee", f.TextFee); err != nil {
		return nil, err
	}

	for _, s := range f.Sizes {
		code := domain.SizeCode(s.Code)
		if _, dup := c.sizes[code]; dup {
			return nil, fmt.Errorf("duplicate size %q", s.Code)
		}
		amount, err := parseAmount("size "+s.Code, s.Surcharge)
		if err != nil {
			return nil, err
		}
		c.sizes[code] = amount
		c.Sizes = append(c.Sizes, SizeOption{Code: code, Surcharge: amount})
	}

	for _, s := range f.Styles {
		code := domain.JacketStyle(s.Code)
		if _, dup := c.styles[code]; dup {
			return nil, fmt.Errorf("duplicate style %q", s.Code)
		}
		base, err := parseAmount("style "+s.Code, s.BasePrice)
		if err != nil {
			return nil, err
		}
		style := Style{
			Code:         code,
			Label:        s.Label,
			BasePrice:    base,
			Image:        s.Image,
			SerialNumber: s.SerialNumber,
			materials:    make(map[domain.MaterialCode]MaterialOption, len(s.Materials)),
		}
		for _, m := range s.Materials {
			amount, err := parseAmount("material "+s.Code+"/"+m.Code, m.Surcharge)
			if err != nil {
				return nil, err
			}
			opt := MaterialOption{Code: domain.MaterialCode(m.Code), Label: m.Label, Surcharge: amount}
			if _, dup := style.materials[opt.Code]; dup {
				return nil, fmt.Errorf("duplicate material %q for style %q", m.Code, s.Code)
			}
			style.materials[opt.Code] = opt
			style.Materials = append(style.Materials, opt)
		}
		if len(style.Materials) == 0 {
			return nil, fmt.Errorf("style %q has no materials", s.Code)
		}
		c.styles[code] = style
		c.Styles = append(c.Styles, style)
	}

	seen := make(map[string]bool, len(f.Products))
	for _, p := range f.Products {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("product id %q is empty or duplicated", p.ID)
		}
		seen[p.ID] = true
		price, err := parseAmount("product "+p.ID, p.Price)
		if err != nil {
			return nil, err
		}
		c.products = append(c.products, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Gender:      p.Gender,
			Price:       price,
			Image:       p.Image,
			URL:         p.URL,
			Description: p.Description,
		})
	}

	return c, nil
}

// parseAmount parses a non-negative amount. Empty means zero.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid amount %q: %w", field, raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: amount %s must not be negative", field, raw)
	}
	return d, nil
}

func (c *Catalog) Style(code domain.JacketStyle) (Style, bool) {
	s, ok := c.styles[code]
	return s, ok
}

func (c *Catalog) SizeSurcharge(code domain.SizeCode) (decimal.Decimal, bool) {
	d, ok := c.sizes[code]
	return d, ok
}

// Products returns a copy of the product list in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Validate runs the pricing checks plus the customization length bounds.
func (c *Catalog) Validate(cfg domain.JacketConfiguration) error {
	style, err := c.resolve(cfg)
	if err != nil {
		return err
	}
	if c.MaxBackTextLength > 0 && utf8.RuneCountInString(cfg.BackText) > c.MaxBackTextLength {
		return fmt.Errorf("%w: back text longer than %d characters", domain.ErrInvalidConfiguration, c.MaxBackTextLength)
	}
	if style.SerialNumber && c.MaxSerialLength > 0 && utf8.RuneCountInString(cfg.Serial) > c.MaxSerialLength {
		return fmt.Errorf("%w: serial longer than %d characters", domain.ErrInvalidConfiguration, c.MaxSerialLength)
	}
	return nil
}

// Prepare validates cfg and returns its normalized form, the shape stored on
// line items and designs.
func (c *Catalog) Prepare(cfg domain.JacketConfiguration) (domain.JacketConfiguration, error) {
	if err := c.Validate(cfg); err != nil {
		return domain.JacketConfiguration{}, err
	}
	style, _ := c.Style(cfg.Style)
	return cfg.Normalize(style.SerialNumber), nil
}

// resolve checks style, material and size membership.
func (c *Catalog) resolve(cfg domain.JacketConfiguration) (Style, error) {
	style, ok := c.styles[cfg.Style]
	if !ok {
		return Style{}, fmt.Errorf("%w: unknown style %q", domain.ErrInvalidConfiguration, cfg.Style)
	}
	if _, ok := style.materials[cfg.Material]; !ok {
		return Style{}, fmt.Errorf("%w: material %q not available for style %q", domain.ErrInvalidConfiguration, cfg.Material, cfg.Style)
	}
	if _, ok := c.sizes[cfg.Size]; !ok {
		return Style{}, fmt.Errorf("%w: unknown size %q", domain.ErrInvalidConfiguration, cfg.Size)
	}
	return style, nil
}
