package service

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	roomserrors "roomly/internal/rooms/errors"
	mongotx "roomly/pkg/db/mongo"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// In-memory booking repository
// ────────────────────────────────────────────────

type fakeBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking

	findOverlappingCalls int
	updateCalls          int

	createFunc          func(ctx context.Context, booking *model.Booking) error
	findOverlappingFunc func(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]*model.Booking, error)
	countFunc           func(ctx context.Context) (int64, error)
	findAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
}

func newFakeBookingRepository(bookings ...*model.Booking) *fakeBookingRepository {
	r := &fakeBookingRepository{bookings: map[string]*model.Booking{}}
	for _, b := range bookings {
		cp := *b
		r.bookings[b.ID] = &cp
	}
	return r
}

func (r *fakeBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if r.createFunc != nil {
		if err := r.createFunc(ctx, booking); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[booking.ID]; exists {
		return bookingserrors.ErrDuplicateID
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if r.findAllFunc != nil {
		return r.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (r *fakeBookingRepository) Count(ctx context.Context) (int64, error) {
	if r.countFunc != nil {
		return r.countFunc(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepository) FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]*model.Booking, error) {
	r.mu.Lock()
	r.findOverlappingCalls++
	r.mu.Unlock()

	if r.findOverlappingFunc != nil {
		return r.findOverlappingFunc(ctx, roomID, start, end, excludeID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.RoomID != roomID || b.Status != model.StatusConfirmed || b.ID == excludeID {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeBookingRepository) UpdateFields(ctx context.Context, id string, changes *model.BookingChanges) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++

	b, ok := r.bookings[id]
	if !ok || b.Status != model.StatusConfirmed {
		return nil, bookingserrors.ErrNotFound
	}
	if changes.UserName != nil {
		b.UserName = *changes.UserName
	}
	if changes.StartTime != nil {
		b.StartTime = *changes.StartTime
	}
	if changes.EndTime != nil {
		b.EndTime = *changes.EndTime
	}
	if changes.TotalPrice != nil {
		b.TotalPrice = *changes.TotalPrice
	}
	if changes.Status != nil {
		b.Status = *changes.Status
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func (r *fakeBookingRepository) get(id string) *model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

// ────────────────────────────────────────────────
// Lock, room and event fakes
// ────────────────────────────────────────────────

type fakeLockRepository struct {
	mu          sync.Mutex
	held        map[string]string
	acquireFunc func(ctx context.Context, lock *model.BookingLock) error
	acquired    int
	released    int
}

func newFakeLockRepository() *fakeLockRepository {
	return &fakeLockRepository{held: map[string]string{}}
}

func (l *fakeLockRepository) Acquire(ctx context.Context, lock *model.BookingLock) error {
	if l.acquireFunc != nil {
		if err := l.acquireFunc(ctx, lock); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[lock.ID]; ok {
		return bookingserrors.ErrLockHeld
	}
	l.held[lock.ID] = lock.Owner
	l.acquired++
	return nil
}

func (l *fakeLockRepository) Release(ctx context.Context, lockID, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[lockID] == owner {
		delete(l.held, lockID)
		l.released++
	}
	return nil
}

type fakeRoomRepository struct {
	rooms map[string]*model.Room
}

func newFakeRoomRepository(rooms ...*model.Room) *fakeRoomRepository {
	r := &fakeRoomRepository{rooms: map[string]*model.Room{}}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (r *fakeRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *fakeRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	out := make([]*model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

type recordedEvent struct {
	eventType string
	booking   model.Booking
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{eventType: eventType, booking: *booking})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

func (l *fakeLockRepository) heldCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

// stallingPublisher blocks like an unreachable broker until its context ends
// or maxStall passes.
type stallingPublisher struct {
	maxStall  time.Duration
	onPublish func(ctx context.Context)
}

func (p *stallingPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	if p.onPublish != nil {
		p.onPublish(ctx)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.maxStall):
		return nil
	}
}

// staleReadRepository applies a concurrent change right after the first
// FindByID returns, so the caller holds an outdated copy.
type staleReadRepository struct {
	*fakeBookingRepository
	afterFirstRead func()
}

func (r *staleReadRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := r.fakeBookingRepository.FindByID(ctx, id)
	if r.afterFirstRead != nil {
		r.afterFirstRead()
		r.afterFirstRead = nil
	}
	return b, err
}
