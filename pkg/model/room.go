package model

import "time"

type Room struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	BaseHourlyRate float64   `json:"base_hourly_rate" bson:"base_hourly_rate"`
	Capacity       int       `json:"capacity" bson:"capacity"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
