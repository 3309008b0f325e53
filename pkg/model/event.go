package model

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

type BookingEvent struct {
	EventID    string    `json:"event_id" bson:"_id"`
	Type       string    `json:"type" bson:"type"`
	BookingID  string    `json:"booking_id" bson:"booking_id"`
	RoomID     string    `json:"room_id" bson:"room_id"`
	UserName   string    `json:"user_name" bson:"user_name"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	TotalPrice float64   `json:"total_price" bson:"total_price"`
	Status     string    `json:"status" bson:"status"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
	ReceivedAt time.Time `json:"received_at,omitempty" bson:"received_at,omitempty"`
}

func NewBookingEvent(eventID, eventType string, b *Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		EventID:    eventID,
		Type:       eventType,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		UserName:   b.UserName,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		OccurredAt: at,
	}
}
