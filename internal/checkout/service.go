package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrOrderFailed = errors.New("failed to place order")
)

// OrderSubmitter accepts an assembled order and returns it as created.
type OrderSubmitter interface {
	Submit(ctx context.Context, userID string, sub order.Submission) (*order.Order, error)
}

type Request struct {
	ShippingAddress order.Address       `json:"shippingAddress"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
}

type Service struct {
	orders    OrderSubmitter
	publisher events.OrderPublisher
	logger    *zap.Logger
}

func NewService(orders OrderSubmitter, publisher events.OrderPublisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, publisher: publisher, logger: logger}
}

// Summary returns what the checkout page shows for store.
func (s *Service) Summary(store *cart.Store) (cart.View, error) {
	v := store.View()
	if len(v.Items) == 0 {
		return cart.View{}, ErrEmptyCart
	}
	return v, nil
}

// PlaceOrder submits the cart as an order and clears it once the order is accepted.
// A rejected submission leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, userID string, meta events.EventMeta, store *cart.Store, req Request) (*order.Order, error) {
	v := store.View()
	if len(v.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" && req.PaymentMethod != order.PaymentCOD && req.PaymentMethod != order.PaymentCard {
		return nil, order.ErrInvalidPaymentMethod
	}

	o, err := s.orders.Submit(ctx, userID, BuildSubmission(v, req))
	if err != nil {
		s.logger.Error("order submission failed", zap.String("userId", userID), zap.String("cart", store.Key()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	store.Clear(ctx)
	s.publish(ctx, meta, o)
	return o, nil
}

// SubmitOrder stores a client-assembled order and announces it. Submission errors are
// returned as is so callers can tell validation failures apart.
func (s *Service) SubmitOrder(ctx context.Context, userID string, meta events.EventMeta, sub order.Submission) (*order.Order, error) {
	o, err := s.orders.Submit(ctx, userID, sub)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, meta, o)
	return o, nil
}

// publish is best-effort; the order is already stored.
func (s *Service) publish(ctx context.Context, meta events.EventMeta, o *order.Order) {
	if err := s.publisher.PublishOrderPlaced(ctx, meta, o); err != nil {
		s.logger.Warn("publish OrderPlaced failed", zap.String("orderId", o.ID), zap.Error(err))
	}
}

// BuildSubmission turns a cart view into an order submission priced at the effective unit price.
func BuildSubmission(v cart.View, req Request) order.Submission {
	items := make([]order.Item, 0, len(v.Items))
	for _, l := range v.Items {
		items = append(items, order.Item{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.EffectivePrice(),
			Name:      l.Product.Name,
			Image:     l.Product.Image,
		})
	}
	addr := req.ShippingAddress
	return order.Submission{
		Items:           items,
		ShippingAddress: &addr,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        v.Subtotal,
		Tax:             v.Tax,
		ShippingCost:    v.Shipping,
		TotalAmount:     v.Total,
	}
}
