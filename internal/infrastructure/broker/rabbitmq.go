// Package broker publishes activity records to RabbitMQ for downstream
// consumers (notifications, analytics).
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/domain"
)

// ExchangeName is the durable topic exchange activity is published to. The
// routing key is the activity type, e.g. "event.approved".
const ExchangeName = "community.activity"

const (
	publishTimeout = 10 * time.Second
	dialRetries    = 10
	dialDelay      = 2 * time.Second
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher is an activity sink backed by an AMQP channel.
type Publisher struct {
	conn    *amqp.Connection
	channel channel
}

// Dial connects to url, retrying while the broker starts, and declares the
// exchange.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Publisher, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for i := 0; i < dialRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("rabbitmq not ready, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial after %d attempts: %w", dialRetries, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Info().Str("exchange", ExchangeName).Msg("connected to rabbitmq")
	return &Publisher{conn: conn, channel: ch}, nil
}

// message is the wire form consumers receive.
type message struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Record publishes a as a persistent JSON message.
func (p *Publisher) Record(ctx context.Context, a *domain.Activity) error {
	body, err := json.Marshal(message{
		ID:         a.ID,
		Type:       string(a.Type),
		EventID:    a.EventID,
		ActorID:    a.ActorID,
		ActorRole:  string(a.ActorRole),
		Status:     string(a.Status),
		OccurredAt: a.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		ExchangeName,
		string(a.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: a.EventID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     a.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
