package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("booking not found")

	ErrRoomNotFound = errors.New("room not found")

	ErrRoomAlreadyBooked = errors.New("room already booked")

	// ErrConflictOnUpdate also matches ErrRoomAlreadyBooked.
	ErrConflictOnUpdate = fmt.Errorf("%w for the selected time", ErrRoomAlreadyBooked)

	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	ErrCannotUpdateCancelled = errors.New("cannot update a cancelled booking")

	ErrInvalidTimeRange = errors.New("end time must be after start time")

	ErrDuplicateID = errors.New("booking id already exists")

	ErrLockHeld = errors.New("room lock is held by another request")
)
