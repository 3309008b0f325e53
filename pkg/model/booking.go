package model

import (
	"time"
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

type Booking struct {
	ID         string    `json:"id" bson:"_id"`
	RoomID     string    `json:"room_id" bson:"room_id"`
	UserName   string    `json:"user_name" bson:"user_name"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	TotalPrice float64   `json:"total_price" bson:"total_price"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingRequest is the client input for a new booking. Price, id and status are never client-supplied.
type BookingRequest struct {
	RoomID    string    `json:"room_id" validate:"required,max=64"`
	UserName  string    `json:"user_name" validate:"required,notblank,max=100"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// BookingUpdate is a partial update; nil fields were not provided.
type BookingUpdate struct {
	UserName  *string    `json:"user_name,omitempty" validate:"omitnil,notblank,max=100"`
	StartTime *time.Time `json:"start_time,omitempty" validate:"omitnil"`
	EndTime   *time.Time `json:"end_time,omitempty" validate:"omitnil"`
}

func (u *BookingUpdate) ChangesTime() bool {
	return u.StartTime != nil || u.EndTime != nil
}

func (u *BookingUpdate) IsEmpty() bool {
	return u.UserName == nil && !u.ChangesTime()
}

// BookingChanges is the set of stored fields an update writes.
type BookingChanges struct {
	UserName   *string
	StartTime  *time.Time
	EndTime    *time.Time
	TotalPrice *float64
	Status     *string
}
