package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/communityhub/events-api/internal/core/domain"
)

type stubChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *stubChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *stubChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublisher_Record(t *testing.T) {
	ch := &stubChannel{}
	p := &Publisher{channel: ch}
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	err := p.Record(context.Background(), &domain.Activity{
		ID:         "a1",
		Type:       domain.ActivityEventApproved,
		EventID:    "e1",
		ActorID:    "admin-1",
		ActorRole:  domain.RoleAdmin,
		Status:     domain.StatusApproved,
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if ch.exchange != ExchangeName || ch.key != "event.approved" {
		t.Fatalf("unexpected routing: exchange=%q key=%q", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.ContentType != "application/json" {
		t.Fatalf("unexpected publishing: %+v", ch.msg)
	}

	var got message
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got.EventID != "e1" || got.Status != "approved" || got.ActorRole != "admin" || !got.OccurredAt.Equal(at) {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestPublisher_Record_Error(t *testing.T) {
	p := &Publisher{channel: &stubChannel{err: errors.New("channel closed")}}
	if err := p.Record(context.Background(), &domain.Activity{Type: domain.ActivityEventCreated}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestPublisher_Close(t *testing.T) {
	ch := &stubChannel{}
	p := &Publisher{channel: ch}
	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !ch.closed {
		t.Fatalf("expected channel closed")
	}
}
