package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/events"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/internal/pricing"
	roomserrors "roomly/internal/rooms/errors"
	roomsrepository "roomly/internal/rooms/repository"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxIDAttempts bounds id regeneration after a duplicate-key insert.
const maxIDAttempts = 3

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	roomRepo  roomsrepository.RoomRepository
	detector  *ConflictDetector
	pricing   *pricing.Engine
	validator *validator.BookingValidator
	publisher events.Publisher
	clock     clock.Clock
	cfg       *config.Config
	newID     func() string
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	roomRepo roomsrepository.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		detector:  NewConflictDetector(repo),
		pricing:   pricing.NewEngine(cfg.PricingLocation),
		validator: validator,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		newID:     NewBookingID,
	}
}

// NewBookingID returns "b" followed by the first eight hex digits of a random UUID.
func NewBookingID() string {
	return "b" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "room_id", req.RoomID, "error", err)
		return nil, errValidation(err)
	}

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	booking, err := s.insertLocked(ctx, room, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.EventBookingCreated, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

// insertLocked checks for conflicts and inserts the booking while holding the
// room lock. The lock is released before the caller publishes.
func (s *bookingService) insertLocked(ctx context.Context, room *model.Room, req *model.BookingRequest) (*model.Booking, error) {
	release, err := s.acquireRoomLock(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	start := req.StartTime.UTC().Truncate(time.Millisecond)
	end := req.EndTime.UTC().Truncate(time.Millisecond)

	for attempt := 1; ; attempt++ {
		booking := &model.Booking{
			ID:        s.newID(),
			RoomID:    room.ID,
			UserName:  req.UserName,
			StartTime: start,
			EndTime:   end,
			Status:    model.StatusConfirmed,
		}

		err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			conflicts, err := s.detector.FindConflicts(sessCtx, room.ID, start, end, "")
			if err != nil {
				return apperrors.Internal("Failed to check existing bookings", err)
			}
			if len(conflicts) > 0 {
				return errRoomAlreadyBooked(conflicts[0])
			}

			booking.TotalPrice = s.pricing.Calculate(room.BaseHourlyRate, start, end)
			return s.repo.Create(sessCtx, booking)
		})
		if err == nil {
			return booking, nil
		}
		if errors.Is(err, bookingserrors.ErrDuplicateID) && attempt < maxIDAttempts {
			s.cfg.Log.Warn("Booking id collision, regenerating", "id", booking.ID, "attempt", attempt)
			continue
		}
		return nil, s.fail("create", booking.ID, err, "Failed to create booking")
	}
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, errBookingNotFound(id)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to fetch bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Cancel is not idempotent: cancelling a cancelled booking fails. The
// cancellation window is checked even for bookings that already started.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.cfg.Log.Warn("Booking already cancelled", "id", id)
		return nil, errAlreadyCancelled()
	}

	untilStart := booking.StartTime.Sub(s.clock.Now())
	if untilStart <= s.cfg.CancellationWindow {
		s.cfg.Log.Warn("Cancellation window expired", "id", id, "until_start", untilStart)
		return nil, errCancellationWindowExpired(s.cfg.CancellationWindow)
	}

	status := model.StatusCancelled
	updated, err := s.repo.UpdateFields(ctx, id, &model.BookingChanges{Status: &status})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			// Cancelled by a concurrent request since the read above.
			return nil, errAlreadyCancelled()
		}
		return nil, s.fail("cancel", id, err, "Failed to cancel booking")
	}

	s.publish(ctx, model.EventBookingCancelled, updated)
	s.cfg.Log.Info("Booking cancelled successfully", "id", id, "room_id", updated.RoomID)
	return updated, nil
}

// Update applies a partial update. A name-only update skips conflict
// detection and pricing; a time change is re-checked against the room's
// other bookings and re-priced at the room's current rate.
func (s *bookingService) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if update == nil {
		return nil, apperrors.InvalidInput("Update body cannot be empty")
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, errValidation(err)
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsCancelled() {
		s.cfg.Log.Warn("Update of cancelled booking rejected", "id", id)
		return nil, errCannotUpdateCancelled()
	}

	if !update.ChangesTime() {
		updated, err := s.repo.UpdateFields(ctx, id, &model.BookingChanges{UserName: update.UserName})
		if err != nil {
			return nil, s.updateFailed(id, err)
		}
		s.publish(ctx, model.EventBookingUpdated, updated)
		s.cfg.Log.Info("Booking updated successfully", "id", id, "fields", "user_name")
		return updated, nil
	}

	updated, err := s.rescheduleLocked(ctx, id, existing.RoomID, update)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.EventBookingUpdated, updated)
	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"start_time", updated.StartTime,
		"end_time", updated.EndTime,
		"total_price", updated.TotalPrice,
	)
	return updated, nil
}

// rescheduleLocked applies a time change while holding the room lock. The
// booking is re-read inside the transaction so the stored interval and
// price always come from the same read.
func (s *bookingService) rescheduleLocked(ctx context.Context, id, roomID string, update *model.BookingUpdate) (*model.Booking, error) {
	release, err := s.acquireRoomLock(ctx, roomID)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return errBookingNotFound(id)
			}
			return err
		}
		if current.IsCancelled() {
			return errCannotUpdateCancelled()
		}

		changes := &model.BookingChanges{UserName: update.UserName}
		start, end := current.StartTime, current.EndTime
		if update.StartTime != nil {
			start = update.StartTime.UTC().Truncate(time.Millisecond)
			changes.StartTime = &start
		}
		if update.EndTime != nil {
			end = update.EndTime.UTC().Truncate(time.Millisecond)
			changes.EndTime = &end
		}
		if err := s.validator.ValidateInterval(start, end); err != nil {
			return errValidation(err)
		}

		conflicts, err := s.detector.FindConflicts(sessCtx, roomID, start, end, id)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if len(conflicts) > 0 {
			return errConflictOnUpdate()
		}

		room, err := s.roomRepo.FindByID(sessCtx, roomID)
		switch {
		case err == nil:
			price := s.pricing.Calculate(room.BaseHourlyRate, start, end)
			changes.TotalPrice = &price
		case errors.Is(err, roomserrors.ErrNotFound):
			s.cfg.Log.Warn("Room missing during re-pricing, keeping price", "id", id, "room_id", roomID)
		default:
			return apperrors.Internal("Failed to retrieve room", err)
		}

		updated, err = s.repo.UpdateFields(sessCtx, id, changes)
		return err
	})
	if err != nil {
		return nil, s.updateFailed(id, err)
	}
	return updated, nil
}

// --- Helpers ---

func (s *bookingService) findRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			s.cfg.Log.Warn("Booking rejected, room not found", "room_id", roomID)
			return nil, errRoomNotFound(roomID)
		}
		s.cfg.Log.Error("Failed to retrieve room", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *bookingService) updateFailed(id string, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) && errors.Is(err, bookingserrors.ErrNotFound) {
		// Cancelled by a concurrent request since the read.
		return errCannotUpdateCancelled()
	}
	return s.fail("update", id, err, "Failed to update booking")
}

// fail passes business errors through and turns anything else into an internal error.
func (s *bookingService) fail(op, id string, err error, message string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.CodeInternal {
			s.cfg.Log.Error("Booking operation failed", "operation", op, "id", id, "error", err)
		} else {
			s.cfg.Log.Warn("Booking operation rejected", "operation", op, "id", id, "code", appErr.Code)
		}
		return appErr
	}
	s.cfg.Log.Error("Booking operation failed", "operation", op, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

// publish runs after the write has committed and the room lock is released.
// It outlives a cancelled request but is bounded by the write timeout.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	ctx, cancel := mongotx.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "event_type", eventType, "id", booking.ID, "error", err)
	}
}
