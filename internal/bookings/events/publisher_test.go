package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomly/pkg/clock"
	"roomly/pkg/kafka"
	"roomly/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
}

func (r *recordingProducer) Publish(_ context.Context, msg kafka.Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

func TestKafkaPublisher_Publish(t *testing.T) {
	now := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	producer := &recordingProducer{}
	publisher := NewKafkaPublisher(producer, clock.Fixed{At: now})

	booking := &model.Booking{
		ID:         "b1a2b3c4",
		RoomID:     "101",
		UserName:   "Asha",
		StartTime:  time.Date(2024, time.December, 31, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC),
		TotalPrice: 300,
		Status:     model.StatusConfirmed,
	}

	require.NoError(t, publisher.Publish(context.Background(), model.EventBookingCreated, booking))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "101", msg.Key)
	assert.Equal(t, model.EventBookingCreated, msg.GetEventType())
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])

	var event model.BookingEvent
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, msg.GetEventID(), event.EventID)
	assert.Equal(t, "b1a2b3c4", event.BookingID)
	assert.Equal(t, 300.0, event.TotalPrice)
	assert.True(t, event.OccurredAt.Equal(now))
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	producer := &recordingProducer{err: errors.New("connection refused")}
	publisher := NewKafkaPublisher(producer, nil)

	err := publisher.Publish(context.Background(), model.EventBookingCancelled, &model.Booking{ID: "b1", RoomID: "101"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking.cancelled")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), model.EventBookingUpdated, &model.Booking{}))
}
