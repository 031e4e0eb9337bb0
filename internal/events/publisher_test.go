package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

type fakeSequences struct {
	next map[string]int64
	err  error
}

func (f *fakeSequences) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next[partitionKey]++
	return f.next[partitionKey], nil
}

func placedOrder() *order.Order {
	return &order.Order{
		ID:              "0b9f3c1e-1d2a-4c3b-9e8f-7a6b5c4d3e2f",
		UserID:          "user_2abc",
		ShippingAddress: order.Address{Email: "ada@example.com"},
		PaymentMethod:   order.PaymentCOD,
		Items:           []order.Item{{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("19.90")}},
		TotalAmount:     decimal.RequireFromString("58.78"),
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	seqs := &fakeSequences{next: map[string]int64{}}
	p := newPublisher(ch, seqs, PublisherOptions{})
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC) }

	meta := EventMeta{CorrelationID: "c0a8e2b6-3c6a-4d7e-9c8f-1f2e3d4c5b6a"}
	if err := p.PublishOrderPlaced(context.Background(), meta, placedOrder()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if ch.exchange != EventsExchange || ch.key != OrderPlacedRoutingKey {
		t.Fatalf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.ContentType != "application/json" {
		t.Fatalf("unexpected publishing: %+v", ch.msg)
	}

	var ev OrderPlacedEvent
	if err := json.Unmarshal(ch.msg.Body, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := ev.Validate(EventTypeOrderPlaced, 1); err != nil {
		t.Fatalf("envelope invalid: %v", err)
	}
	if ev.PartitionKey != placedOrder().ID || ev.Sequence != 1 {
		t.Fatalf("unexpected partition/sequence: %s/%d", ev.PartitionKey, ev.Sequence)
	}
	if ev.Producer != storefrontServiceName || ev.Schema != orderPlacedSchema {
		t.Fatalf("unexpected producer/schema: %s/%s", ev.Producer, ev.Schema)
	}
	if ev.CorrelationID != meta.CorrelationID {
		t.Fatalf("correlation id not carried")
	}
	if ch.msg.MessageId != ev.EventID {
		t.Fatalf("message id %s does not match event id %s", ch.msg.MessageId, ev.EventID)
	}
	if !ev.Payload.TotalAmount.Equal(decimal.RequireFromString("58.78")) || len(ev.Payload.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", ev.Payload)
	}
	if ev.Payload.Email != "ada@example.com" {
		t.Fatalf("email not carried: %q", ev.Payload.Email)
	}
}

func TestPublishOrderPlacedSequenceFailure(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, &fakeSequences{err: errors.New("db down")}, PublisherOptions{Producer: "custom"})

	if err := p.PublishOrderPlaced(context.Background(), EventMeta{}, placedOrder()); err == nil {
		t.Fatalf("expected error")
	}
	if ch.key != "" {
		t.Fatalf("nothing should be published without a sequence")
	}
}

func TestEnvelopeValidate(t *testing.T) {
	ev := newOrderPlacedEvent(EventMeta{}, 3, "storefront", orderPlacedPayload(placedOrder()), time.Now())
	if err := ev.Validate(EventTypeOrderPlaced, 1); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	ev.EventName = "WrongName"
	if err := ev.Validate(EventTypeOrderPlaced, 1); err == nil {
		t.Fatalf("expected validation error for wrong eventName")
	}

	ev = newOrderPlacedEvent(EventMeta{}, 3, "storefront", OrderPlacedPayload{}, time.Now())
	if err := ev.Validate(EventTypeOrderPlaced, 1); err == nil {
		t.Fatalf("expected validation error for missing partitionKey")
	}
}

func TestNoop(t *testing.T) {
	var p OrderPublisher = Noop{}
	if err := p.PublishOrderPlaced(context.Background(), EventMeta{}, placedOrder()); err != nil {
		t.Fatalf("noop returned %v", err)
	}
}
