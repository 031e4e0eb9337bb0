package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pricing"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("missing required fields")
	ErrSlugTaken      = errors.New("a product with this name already exists")
)

type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Product struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	SalePrice      decimal.NullDecimal `json:"salePrice"`
	Images         []string            `json:"images"`
	CategoryID     string              `json:"categoryId"`
	Rating         float64             `json:"rating"`
	ReviewCount    int                 `json:"reviewCount"`
	InStock        bool                `json:"inStock"`
	StockCount     int                 `json:"stockCount"`
	Features       []string            `json:"features"`
	Tags           []string            `json:"tags"`
	IsFeatured     bool                `json:"isFeatured"`
	IsBestseller   bool                `json:"isBestseller"`
	IsNew          bool                `json:"isNew"`
	Specifications []Specification     `json:"specifications"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func (p Product) EffectivePrice() decimal.Decimal {
	return pricing.EffectivePrice(p.Price, p.SalePrice)
}

// Snapshot captures the fields a cart line keeps for the lifetime of the line.
func (p Product) Snapshot() cart.Product {
	var image string
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return cart.Product{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		SalePrice: p.SalePrice,
		Image:     image,
		Category:  p.CategoryID,
	}
}

// MaxQuantity clamps a requested quantity to what is in stock. A product without a
// stock count is not clamped.
func (p Product) MaxQuantity(requested int) int {
	if p.StockCount > 0 && requested > p.StockCount {
		return p.StockCount
	}
	return requested
}

// Input is the admin payload for creating or replacing a product.
type Input struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	SalePrice      decimal.NullDecimal `json:"salePrice"`
	Images         []string            `json:"images"`
	Category       string              `json:"category"`
	InStock        *bool               `json:"inStock"`
	StockCount     *int                `json:"stockCount"`
	Features       []string            `json:"features"`
	Tags           []string            `json:"tags"`
	IsFeatured     bool                `json:"isFeatured"`
	IsBestseller   bool                `json:"isBestseller"`
	IsNew          bool                `json:"isNewArrival"`
	Specifications []Specification     `json:"specifications"`
}

func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" || !in.Price.IsPositive() || strings.TrimSpace(in.Category) == "" {
		return ErrInvalidProduct
	}
	if in.SalePrice.Valid && in.SalePrice.Decimal.IsNegative() {
		return ErrInvalidProduct
	}
	if in.StockCount != nil && *in.StockCount < 0 {
		return ErrInvalidProduct
	}
	return nil
}

// product builds the stored product with defaults applied.
func (in Input) product() Product {
	p := Product{
		Name:           strings.TrimSpace(in.Name),
		Slug:           Slugify(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		SalePrice:      in.SalePrice,
		Images:         nonNil(in.Images),
		CategoryID:     strings.TrimSpace(in.Category),
		InStock:        true,
		Features:       nonNil(in.Features),
		Tags:           nonNil(in.Tags),
		IsFeatured:     in.IsFeatured,
		IsBestseller:   in.IsBestseller,
		IsNew:          in.IsNew,
		Specifications: in.Specifications,
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.StockCount != nil {
		p.StockCount = *in.StockCount
	}
	if p.Specifications == nil {
		p.Specifications = []Specification{}
	}
	return p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type Filter struct {
	Category string
	Featured bool
}
