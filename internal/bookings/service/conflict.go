package service

import (
	"context"
	"sort"
	"time"

	"roomly/internal/bookings/repository"
	"roomly/pkg/model"
)

// Overlaps is the strict half-open overlap test: intervals that only touch
// at an endpoint do not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// ConflictDetector finds CONFIRMED bookings of a room that overlap a candidate interval.
type ConflictDetector struct {
	repo repository.BookingRepository
}

func NewConflictDetector(repo repository.BookingRepository) *ConflictDetector {
	return &ConflictDetector{repo: repo}
}

// FindConflicts returns the overlapping bookings ordered by start time, then
// id. The booking with excludeID, if any, is never reported.
func (d *ConflictDetector) FindConflicts(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]*model.Booking, error) {
	candidates, err := d.repo.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]*model.Booking, 0, len(candidates))
	for _, b := range candidates {
		if b.RoomID != roomID || b.Status != model.StatusConfirmed {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			conflicts = append(conflicts, b)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if !conflicts[i].StartTime.Equal(conflicts[j].StartTime) {
			return conflicts[i].StartTime.Before(conflicts[j].StartTime)
		}
		return conflicts[i].ID < conflicts[j].ID
	})

	return conflicts, nil
}
