package handler

import (
	"errors"
	"fmt"
	"time"

	"roomly/internal/bookings/service"
	apperrors "roomly/pkg/errors"
)

// conflictTimeLayout is a 12-hour clock with a lowercase meridiem, e.g. "03:30 pm".
const conflictTimeLayout = "03:04 pm"

// presentError rewrites a ROOM_ALREADY_BOOKED error so its message names the
// conflicting interval in loc. Any other error is returned unchanged.
func presentError(err error, loc *time.Location) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeRoomAlreadyBooked {
		return err
	}

	start, ok := detailTime(appErr.Details, service.DetailConflictStart)
	if !ok {
		return err
	}
	end, ok := detailTime(appErr.Details, service.DetailConflictEnd)
	if !ok {
		return err
	}

	rendered := *appErr
	rendered.Message = fmt.Sprintf("Room already booked from %s to %s",
		start.In(loc).Format(conflictTimeLayout),
		end.In(loc).Format(conflictTimeLayout),
	)
	return &rendered
}

func detailTime(details map[string]any, key string) (time.Time, bool) {
	raw, ok := details[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
