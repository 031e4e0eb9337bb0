package cart

import (
	"errors"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pricing"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidProduct     = errors.New("product id is required")
	ErrMissingSession     = errors.New("cart session id is required")
	ErrUnsupportedVersion = errors.New("unsupported cart layout version")
)

// Product is the snapshot of a catalog product taken when it was added to the cart.
type Product struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Slug      string              `json:"slug,omitempty"`
	Price     decimal.Decimal     `json:"price"`
	SalePrice decimal.NullDecimal `json:"salePrice"`
	Image     string              `json:"image,omitempty"`
	Category  string              `json:"category,omitempty"`
}

func (p Product) EffectivePrice() decimal.Decimal {
	return pricing.EffectivePrice(p.Price, p.SalePrice)
}

type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// View is what the API returns for a cart: lines plus the derived totals.
type View struct {
	Items []Line `json:"items"`
	pricing.Summary
}

func pricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{
			Price:     l.Product.Price,
			SalePrice: l.Product.SalePrice,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func cloneLines(lines []Line) []Line {
	return append([]Line(nil), lines...)
}
