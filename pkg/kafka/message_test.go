package kafka

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_IncrementRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	assert.Equal(t, 0, msg.GetRetryCount())

	for i := 1; i <= 12; i++ {
		msg.IncrementRetryCount()
		assert.Equal(t, i, msg.GetRetryCount())
	}
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestMessage_IncrementRetryCountWithoutHeaders(t *testing.T) {
	var msg Message
	msg.IncrementRetryCount()
	assert.Equal(t, 1, msg.GetRetryCount())
}

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("101").
		WithEventType("booking.created").
		WithSource("bookings").
		WithValue(map[string]string{"booking_id": "b1a2b3c4"}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "101", msg.Key)
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	var decoded map[string]string
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "b1a2b3c4", decoded["booking_id"])
}

func TestMessageBuilder_BuildReportsEncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("101").WithValue(math.Inf(1)).Build()
	require.Error(t, err)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		retries  int
		expected bool
	}{
		{"nil error", nil, 0, false},
		{"transient under limit", errors.New("dial tcp: i/o timeout"), 0, true},
		{"transient at limit", errors.New("connection refused"), 3, false},
		{"explicit transient", NewTransientError("store down", nil), 1, true},
		{"permanent", NewPermanentError("bad payload", nil), 0, false},
		{"unknown is permanent", errors.New("duplicate event"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldRetry(tt.err, tt.retries, 3))
		})
	}
}
