// Package events publishes booking lifecycle changes to Kafka.
package events

import (
	"context"
	"fmt"

	"roomly/pkg/clock"
	"roomly/pkg/kafka"
	"roomly/pkg/model"

	"github.com/google/uuid"
)

const (
	Source        = "bookings"
	SchemaVersion = "1"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

// MessagePublisher is the part of *kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer MessagePublisher
	clock    clock.Clock
}

func NewKafkaPublisher(producer MessagePublisher, clk clock.Clock) *KafkaPublisher {
	if clk == nil {
		clk = clock.System{}
	}
	return &KafkaPublisher{producer: producer, clock: clk}
}

// Publish sends one event keyed by room id, so a room's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	now := p.clock.Now()
	eventID := uuid.NewString()
	event := model.NewBookingEvent(eventID, eventType, booking, now)

	msg, err := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithEventID(eventID).
		WithEventType(eventType).
		WithSource(Source).
		WithSchemaVersion(SchemaVersion).
		WithTimestamp(now).
		WithValue(event).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// NoopPublisher drops every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, *model.Booking) error { return nil }
