package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/sequence"
)

// OrderPublisher announces placed orders to the rest of the system.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, meta EventMeta, o *order.Order) error
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       channel
	seqRepo  sequence.Repository
	producer string
	now      func() time.Time
}

type PublisherOptions struct {
	Producer string
}

func NewPublisher(conn *amqp.Connection, seqRepo sequence.Repository, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch, seqRepo, opts), nil
}

func newPublisher(ch channel, seqRepo sequence.Repository, opts PublisherOptions) *Publisher {
	producer := opts.Producer
	if producer == "" {
		producer = storefrontServiceName
	}
	return &Publisher{ch: ch, seqRepo: seqRepo, producer: producer, now: time.Now}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, meta EventMeta, o *order.Order) error {
	seq, err := p.seqRepo.NextSequence(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	env := newOrderPlacedEvent(meta, seq, p.producer, orderPlacedPayload(o), p.now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
		},
	)
}

// Noop drops every event. It stands in when publishing is disabled.
type Noop struct{}

func (Noop) PublishOrderPlaced(ctx context.Context, meta EventMeta, o *order.Order) error {
	return nil
}
