package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	mongotx "roomly/pkg/db/mongo"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"

	"github.com/google/uuid"
)

func roomLockID(roomID string) string {
	return fmt.Sprintf("room_lock_%s", roomID)
}

// acquireRoomLock serializes interval checks and writes for one room. It
// retries while another request holds the lock and returns the release func.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (func(), error) {
	lock := &model.BookingLock{
		ID:     roomLockID(roomID),
		RoomID: roomID,
		Owner:  uuid.NewString(),
	}

	attempts := max(s.cfg.LockRetryAttempts, 1)
	for attempt := 1; ; attempt++ {
		lock.ExpiresAt = s.clock.Now().Add(s.cfg.LockTTL)

		err := s.lockRepo.Acquire(ctx, lock)
		if err == nil {
			break
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Internal("Failed to acquire room lock", err)
		}
		if attempt >= attempts {
			s.cfg.Log.Warn("Room lock contention", "room_id", roomID, "attempts", attempt)
			return nil, apperrors.Wrap(err, apperrors.CodeConflict, "Room is currently being booked, please retry", http.StatusConflict)
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.Timeout("Timed out waiting for room lock")
		case <-time.After(s.cfg.LockRetryDelay):
		}
	}

	release := func() {
		// Release even when the request context is already cancelled.
		ctx, cancel := mongotx.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
		defer cancel()
		if err := s.lockRepo.Release(ctx, lock.ID, lock.Owner); err != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lock.ID, "error", err)
		}
	}
	return release, nil
}
