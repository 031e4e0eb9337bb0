package events

import (
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeOrderPlaced = "OrderPlaced"
	orderPlacedSchema    = "ecommerce.order.placed.v1"
)

type OrderPlacedItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID       string              `json:"orderId"`
	UserID        string              `json:"userId"`
	Email         string              `json:"email,omitempty"`
	Items         []OrderPlacedItem   `json:"items"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PlacedAt      time.Time           `json:"placedAt"`
}

type OrderPlacedEvent = EventEnvelope[OrderPlacedPayload]

func orderPlacedPayload(o *order.Order) OrderPlacedPayload {
	p := OrderPlacedPayload{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Email:         o.ShippingAddress.Email,
		Items:         make([]OrderPlacedItem, 0, len(o.Items)),
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		PlacedAt:      o.CreatedAt,
	}
	for _, it := range o.Items {
		p.Items = append(p.Items, OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return p
}

func newOrderPlacedEvent(meta EventMeta, seq int64, producer string, payload OrderPlacedPayload, occurredAt time.Time) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventName:     EventTypeOrderPlaced,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  payload.OrderID,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Schema:        orderPlacedSchema,
		Payload:       payload,
	}
}
