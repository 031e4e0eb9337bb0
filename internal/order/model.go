package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrNoItems              = errors.New("no items in order")
	ErrInvalidItem          = errors.New("order item needs a product and a positive quantity")
	ErrInvalidAddress       = errors.New("shipping address is incomplete")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrMissingUser          = errors.New("user id is required")
)

type Item struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Validate requires every field the order form marks as mandatory. Email and state are optional.
func (a Address) Validate() error {
	for _, v := range []string{a.FirstName, a.LastName, a.Phone, a.Address, a.City, a.ZipCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidAddress
		}
	}
	return nil
}

type Order struct {
	ID              string          `json:"orderId"`
	UserID          string          `json:"userId"`
	Items           []Item          `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          Status          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Submission is what a client sends to place an order. Amounts are taken as given.
type Submission struct {
	Items           []Item          `json:"items"`
	ShippingAddress *Address        `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

type Customer struct {
	Email         string          `json:"email"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	OrdersCount   int             `json:"ordersCount"`
	LastOrderDate time.Time       `json:"lastOrderDate"`
}

type Stats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Orders       int             `json:"orders"`
	Products     int             `json:"products"`
	Customers    int             `json:"customers"`
	RecentOrders []Order         `json:"recentOrders"`
}
