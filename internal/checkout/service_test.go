package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pricing"
)

type fakeSubmitter struct {
	got []order.Submission
	err error
}

func (f *fakeSubmitter) Submit(ctx context.Context, userID string, sub order.Submission) (*order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.got = append(f.got, sub)
	return &order.Order{ID: "order-1", UserID: userID, TotalAmount: sub.TotalAmount}, nil
}

type fakePublisher struct {
	published []string
	metas     []events.EventMeta
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, meta events.EventMeta, o *order.Order) error {
	f.published = append(f.published, o.ID)
	f.metas = append(f.metas, meta)
	return f.err
}

func address() order.Address {
	return order.Address{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Phone:     "555-0199",
		Address:   "2 Compiler Rd",
		City:      "Arlington",
		ZipCode:   "22201",
		Country:   "US",
	}
}

func filledStore(t *testing.T, storage cart.Storage) *cart.Store {
	t.Helper()
	ctx := context.Background()
	s := cart.NewStore("cart-storage:s1", storage, pricing.DefaultPolicy(), nil)
	require.NoError(t, s.AddItem(ctx, cart.Product{ID: "p1", Name: "Lamp", Price: decimal.NewFromInt(100), Image: "lamp.jpg"}, 1))
	require.NoError(t, s.AddItem(ctx, cart.Product{
		ID:        "p2",
		Name:      "Rug",
		Price:     decimal.NewFromInt(80),
		SalePrice: decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}, 2))
	return s
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("submits effective prices and derived totals then clears", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		publisher := &fakePublisher{}
		store := filledStore(t, cart.NewMemoryStorage())

		o, err := NewService(submitter, publisher, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: address()})
		require.NoError(t, err)
		require.Equal(t, "order-1", o.ID)

		require.Len(t, submitter.got, 1)
		sub := submitter.got[0]
		require.Len(t, sub.Items, 2)
		require.True(t, sub.Items[1].Price.Equal(decimal.NewFromInt(50)))
		require.Equal(t, "lamp.jpg", sub.Items[0].Image)
		require.True(t, sub.Subtotal.Equal(decimal.NewFromInt(200)))
		require.True(t, sub.Tax.Equal(decimal.NewFromInt(20)))
		require.True(t, sub.ShippingCost.Equal(decimal.NewFromInt(15)))
		require.True(t, sub.TotalAmount.Equal(decimal.NewFromInt(235)))
		require.Equal(t, "Hopper", sub.ShippingAddress.LastName)

		require.Equal(t, 0, store.Len())
		require.Equal(t, []string{"order-1"}, publisher.published)
	})

	t.Run("empty cart", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		store := cart.NewStore("k", nil, pricing.DefaultPolicy(), nil)

		_, err := NewService(submitter, nil, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: address()})
		require.ErrorIs(t, err, ErrEmptyCart)
		require.Empty(t, submitter.got)
	})

	t.Run("incomplete address keeps the cart", func(t *testing.T) {
		store := filledStore(t, nil)
		addr := address()
		addr.ZipCode = ""

		_, err := NewService(&fakeSubmitter{}, nil, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: addr})
		require.ErrorIs(t, err, order.ErrInvalidAddress)
		require.Equal(t, 2, store.Len())
	})

	t.Run("unknown payment method", func(t *testing.T) {
		store := filledStore(t, nil)

		_, err := NewService(&fakeSubmitter{}, nil, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: address(), PaymentMethod: "Barter"})
		require.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
	})

	t.Run("downstream failure keeps the cart", func(t *testing.T) {
		submitter := &fakeSubmitter{err: errors.New("connection refused")}
		publisher := &fakePublisher{}
		store := filledStore(t, cart.NewMemoryStorage())

		_, err := NewService(submitter, publisher, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: address()})
		require.ErrorIs(t, err, ErrOrderFailed)
		require.Equal(t, 3, store.ItemCount())
		require.Empty(t, publisher.published)
	})

	t.Run("publish failure does not undo the order", func(t *testing.T) {
		publisher := &fakePublisher{err: errors.New("channel closed")}
		store := filledStore(t, nil)

		o, err := NewService(&fakeSubmitter{}, publisher, nil).PlaceOrder(ctx, "user-1", events.EventMeta{}, store, Request{ShippingAddress: address()})
		require.NoError(t, err)
		require.NotNil(t, o)
		require.Equal(t, 0, store.Len())
	})
}

func TestSubmitOrder(t *testing.T) {
	ctx := context.Background()
	sub := order.Submission{
		Items:         []order.Item{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		PaymentMethod: order.PaymentCOD,
		TotalAmount:   decimal.NewFromInt(26),
	}

	t.Run("stored order is published", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		publisher := &fakePublisher{}

		o, err := NewService(submitter, publisher, nil).SubmitOrder(ctx, "user-1", events.EventMeta{CorrelationID: "corr-1"}, sub)
		require.NoError(t, err)
		require.Equal(t, "order-1", o.ID)
		require.Len(t, submitter.got, 1)
		require.Equal(t, []string{"order-1"}, publisher.published)
		require.Equal(t, "corr-1", publisher.metas[0].CorrelationID)
	})

	t.Run("rejected submission is returned unwrapped and not published", func(t *testing.T) {
		publisher := &fakePublisher{}

		_, err := NewService(&fakeSubmitter{err: order.ErrNoItems}, publisher, nil).SubmitOrder(ctx, "user-1", events.EventMeta{}, sub)
		require.ErrorIs(t, err, order.ErrNoItems)
		require.NotErrorIs(t, err, ErrOrderFailed)
		require.Empty(t, publisher.published)
	})

	t.Run("publish failure still returns the order", func(t *testing.T) {
		publisher := &fakePublisher{err: errors.New("channel closed")}

		o, err := NewService(&fakeSubmitter{}, publisher, nil).SubmitOrder(ctx, "user-1", events.EventMeta{}, sub)
		require.NoError(t, err)
		require.Equal(t, "order-1", o.ID)
	})
}

func TestSummary(t *testing.T) {
	svc := NewService(&fakeSubmitter{}, nil, nil)

	_, err := svc.Summary(cart.NewStore("k", nil, pricing.DefaultPolicy(), nil))
	require.ErrorIs(t, err, ErrEmptyCart)

	v, err := svc.Summary(filledStore(t, nil))
	require.NoError(t, err)
	require.Equal(t, 3, v.ItemCount)
	require.True(t, v.Total.Equal(decimal.NewFromInt(235)))
}
