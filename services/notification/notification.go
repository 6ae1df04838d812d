package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/streadway/amqp"
)

// AvailabilityEvent is emitted after a committed change to a property's
// calendar.
type AvailabilityEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	PropertyID    uint      `json:"propertyId"`
	ReservationID uint      `json:"reservationId,omitempty"`
	StartDate     string    `json:"startDate,omitempty"`
	EndDate       string    `json:"endDate,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher fans availability events out to listeners. Publish errors are
// reported but never roll back the change that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event AvailabilityEvent) error
}

// NewEventBuilder fills in the id and timestamp shared by every event.
func NewEventBuilder(eventType string, propertyID uint) *EventBuilder {
	return &EventBuilder{event: AvailabilityEvent{Type: eventType, PropertyID: propertyID}}
}

type EventBuilder struct {
	event AvailabilityEvent
}

func (b *EventBuilder) WithReservation(id uint, startDate, endDate string) *EventBuilder {
	b.event.ReservationID = id
	b.event.StartDate = startDate
	b.event.EndDate = endDate
	return b
}

func (b *EventBuilder) Build() AvailabilityEvent {
	e := b.event
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	return e
}

// MelodyPublisher broadcasts events to every websocket session on /ws.
type MelodyPublisher struct {
	m *melody.Melody
}

func NewMelodyPublisher(m *melody.Melody) *MelodyPublisher {
	return &MelodyPublisher{m: m}
}

func (p *MelodyPublisher) Publish(_ context.Context, event AvailabilityEvent) error {
	if p.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}
	return p.m.Broadcast(body)
}

// AMQPPublisher sends events to a durable topic exchange. The routing key is
// the event type, e.g. "reservation.created".
type AMQPPublisher struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	maxRetries int
	mu         sync.Mutex
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange, maxRetries: 3}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event AvailabilityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"event_type":  event.Type,
			"property_id": int64(event.PropertyID),
		},
	}

	var lastErr error
	for i := 0; i < p.maxRetries; i++ {
		p.mu.Lock()
		lastErr = p.channel.Publish(p.exchange, event.Type, false, false, msg)
		p.mu.Unlock()
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("event publish failed after %d attempts: %w", p.maxRetries, lastErr)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// MultiPublisher publishes to every child and returns the first error.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event AvailabilityEvent) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AvailabilityEvent) error { return nil }
