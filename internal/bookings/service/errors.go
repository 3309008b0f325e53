package service

import (
	"fmt"
	"net/http"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	validator "roomly/internal/bookings/validator"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

// Detail keys of a ROOM_ALREADY_BOOKED error.
const (
	DetailConflictBookingID = "conflict_booking_id"
	DetailConflictStart     = "conflict_start"
	DetailConflictEnd       = "conflict_end"
)

func errBookingNotFound(id string) *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrNotFound, apperrors.CodeBookingNotFound, "Booking not found", http.StatusNotFound).
		WithDetails(map[string]any{"id": id})
}

func errRoomNotFound(roomID string) *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrRoomNotFound, apperrors.CodeRoomNotFound, "Room not found", http.StatusNotFound).
		WithDetails(map[string]any{"room_id": roomID})
}

// errRoomAlreadyBooked carries the first conflict's raw interval; rendering
// it for people is left to the HTTP layer.
func errRoomAlreadyBooked(conflict *model.Booking) *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrRoomAlreadyBooked, apperrors.CodeRoomAlreadyBooked, "Room already booked", http.StatusConflict).
		WithDetails(map[string]any{
			DetailConflictBookingID: conflict.ID,
			DetailConflictStart:     conflict.StartTime.UTC().Format(time.RFC3339),
			DetailConflictEnd:       conflict.EndTime.UTC().Format(time.RFC3339),
		})
}

func errConflictOnUpdate() *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrConflictOnUpdate, apperrors.CodeConflictOnUpdate, "Room is already booked for the selected time", http.StatusConflict)
}

func errAlreadyCancelled() *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrAlreadyCancelled, apperrors.CodeAlreadyCancelled, "Booking is already cancelled", http.StatusConflict)
}

func errCancellationWindowExpired(window time.Duration) *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrCancellationWindowExpired, apperrors.CodeCancellationWindowExpired,
		"Cancellation is only allowed more than "+formatWindow(window)+" before the booking start time", http.StatusUnprocessableEntity)
}

func errCannotUpdateCancelled() *apperrors.AppError {
	return apperrors.Wrap(bookingserrors.ErrCannotUpdateCancelled, apperrors.CodeCannotUpdateCancelled, "Cannot update a cancelled booking", http.StatusConflict)
}

func errValidation(err error) *apperrors.AppError {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		appErr := apperrors.Validation(verrs[0].Message, verrs.Details())
		appErr.Err = err
		return appErr
	}
	appErr := apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	appErr.Err = err
	return appErr
}

func formatWindow(d time.Duration) string {
	if d%time.Hour == 0 {
		if h := int(d / time.Hour); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	}
	return d.String()
}
