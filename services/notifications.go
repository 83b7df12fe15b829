package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/golog"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventInterestCreated   = "interest.created"
	EventInterestResponded = "interest.responded"
	EventKYCCompleted      = "kyc.completed"
)

// Event is the payload published for workflow changes. UserID is the user
// the event is addressed to.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id,omitempty"`
	InterestID string    `json:"interest_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Eligible   *bool     `json:"eligible,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier delivers events. Delivery problems are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

func stamp(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	return e
}

// LogNotifier writes events to the log. Used when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, e Event) {
	e = stamp(e)
	golog.Infof("event %s to user %s (property=%s interest=%s status=%s)", e.Type, e.UserID, e.PropertyID, e.InterestID, e.Status)
}

// AMQPNotifier publishes events to a RabbitMQ topic exchange, keyed by event type.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	timeout  time.Duration
}

func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange, timeout: 2 * time.Second}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, e Event) {
	e = stamp(e)
	if err := n.publishJSON(ctx, e.Type, e.ID, e); err != nil {
		golog.Errorf("publish %s: %v", e.Type, err)
	}
}

func (n *AMQPNotifier) publishJSON(ctx context.Context, key, messageID string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// The request may finish before the broker answers.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	return n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// NewNotifier connects to RabbitMQ when url is set and falls back to logging.
func NewNotifier(url, exchange string) (Notifier, func() error) {
	if url == "" {
		return LogNotifier{}, func() error { return nil }
	}
	n, err := NewAMQPNotifier(url, exchange)
	if err != nil {
		golog.Errorf("rabbitmq unavailable, logging events instead: %v", err)
		return LogNotifier{}, func() error { return nil }
	}
	golog.Infof("publishing events to exchange %s", exchange)
	return n, n.Close
}
