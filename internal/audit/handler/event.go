// Package handler turns booking events read from Kafka into audit records.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"roomly/internal/audit/repository"
	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type EventHandler struct {
	repo repository.EventRepository
	log  *logger.Logger
}

func NewEventHandler(repo repository.EventRepository, log *logger.Logger) *EventHandler {
	return &EventHandler{repo: repo, log: log}
}

// Handle is a kafka.MessageHandler. Undecodable payloads are permanent
// failures; store failures are retried.
func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return kafka.NewPermanentError("malformed booking event payload", err)
	}

	if event.EventID == "" {
		event.EventID = msg.GetEventID()
	}
	if event.EventID == "" || event.BookingID == "" {
		return kafka.NewPermanentError("booking event is missing identifiers", kafka.ErrInvalidMessage)
	}

	inserted, err := h.repo.Save(ctx, &event)
	if err != nil {
		return kafka.NewTransientError(fmt.Sprintf("failed to store event %s", event.EventID), err)
	}

	if !inserted {
		h.log.Debug("Duplicate booking event ignored", "event_id", event.EventID)
		return nil
	}
	h.log.Info("Booking event recorded",
		"event_id", event.EventID,
		"event_type", event.Type,
		"booking_id", event.BookingID,
		"room_id", event.RoomID,
	)
	return nil
}
