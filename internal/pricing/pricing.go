package pricing

import "github.com/shopspring/decimal"

func init() {
	// Monetary amounts travel as JSON numbers on the API and in persisted carts.
	decimal.MarshalJSONWithoutQuotes = true
}

// Policy holds the store-wide pricing constants.
type Policy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		TaxRate:               decimal.NewFromFloat(0.10),
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFee:           decimal.NewFromInt(15),
	}
}

// Line is the minimal view of a cart line the derivations need.
type Line struct {
	Price     decimal.Decimal
	SalePrice decimal.NullDecimal
	Quantity  int
}

type Summary struct {
	ItemCount            int             `json:"itemCount"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	Tax                  decimal.Decimal `json:"tax"`
	Shipping             decimal.Decimal `json:"shipping"`
	Total                decimal.Decimal `json:"total"`
	AmountToFreeShipping decimal.Decimal `json:"amountToFreeShipping"`
}

// EffectivePrice returns the sale price whenever one is set and non-zero, even if it is
// higher than the list price.
func EffectivePrice(price decimal.Decimal, sale decimal.NullDecimal) decimal.Decimal {
	if sale.Valid && !sale.Decimal.IsZero() {
		return sale.Decimal
	}
	return price
}

func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(EffectivePrice(l.Price, l.SalePrice).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Tax is rounded to cents, half away from zero.
func (p Policy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() || subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

func (p Policy) Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(p.Tax(subtotal)).Add(p.Shipping(subtotal))
}

// AmountToFreeShipping is how much more the shopper has to add before shipping is waived.
func (p Policy) AmountToFreeShipping(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() || subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FreeShippingThreshold.Sub(subtotal)
}

func (p Policy) Summarize(lines []Line) Summary {
	subtotal := Subtotal(lines)
	return Summary{
		ItemCount:            ItemCount(lines),
		Subtotal:             subtotal,
		Tax:                  p.Tax(subtotal),
		Shipping:             p.Shipping(subtotal),
		Total:                p.Total(subtotal),
		AmountToFreeShipping: p.AmountToFreeShipping(subtotal),
	}
}
