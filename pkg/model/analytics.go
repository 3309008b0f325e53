package model

import "time"

// RoomUsage is one row of the per-room utilization report.
type RoomUsage struct {
	RoomID       string  `json:"room_id" bson:"room_id"`
	RoomName     string  `json:"room_name" bson:"room_name"`
	TotalHours   float64 `json:"total_hours" bson:"total_hours"`
	TotalRevenue float64 `json:"total_revenue" bson:"total_revenue"`
}

type AnalyticsQuery struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

type AnalyticsReport struct {
	From  time.Time    `json:"from"`
	To    time.Time    `json:"to"`
	Rooms []*RoomUsage `json:"rooms"`
}
