package messaging

import (
	"context"
	"fmt"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const publishTimeout = 3 * time.Second

// OrderPlaced is the event body published for every checkout.
type OrderPlaced struct {
	EventType   string          `json:"eventType"`
	OrderID     string          `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	ItemCount   int             `json:"itemCount"`
	Items       []OrderLine     `json:"items"`
	Email       string          `json:"email"`
	Timestamp   time.Time       `json:"timestamp"`
}

type OrderLine struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch    Channel
	queue string
}

// NewRabbitPublisher opens a channel on conn and declares the order queue so
// publishing never fails on missing infrastructure.
func NewRabbitPublisher(conn *amqp.Connection, queue string) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}
	return NewRabbitPublisherWithChannel(ch, queue), nil
}

func NewRabbitPublisherWithChannel(ch Channel, queue string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, queue: queue}
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	body, err := json.Marshal(NewOrderPlaced(o))
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",      // default exchange
		p.queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    o.ID,
			Timestamp:    o.CreatedAt,
			Body:         body,
		},
	)
}

func NewOrderPlaced(o *domain.Order) OrderPlaced {
	ev := OrderPlaced{
		EventType:   "OrderPlaced",
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
		ItemCount:   o.ItemCount,
		Email:       o.Shipping.Email,
		Timestamp:   o.CreatedAt.UTC(),
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderLine{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return ev
}

// LogPublisher records order events in the log when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	logger.WithContext(ctx).Info().
		Str("order_id", o.ID).
		Str("total", o.TotalAmount.StringFixed(2)).
		Int("items", o.ItemCount).
		Msg("Order placed (no broker configured)")
	return nil
}
