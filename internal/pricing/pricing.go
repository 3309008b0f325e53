// Package pricing computes booking prices from a room's base hourly rate,
// billing weekday peak hours at a surcharge.
package pricing

import (
	"math"
	"time"
)

const PeakMultiplier = 1.5

type window struct {
	from, to int
}

// Peak hours are half-open: 13:00 and 19:00 bill at the base rate.
var peakWindows = []window{{10, 13}, {16, 19}}

type Engine struct {
	Location *time.Location
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{Location: loc}
}

// CalculatePrice prices [start, end) with peak hours evaluated in UTC.
func CalculatePrice(baseRate float64, start, end time.Time) float64 {
	return NewEngine(time.UTC).Calculate(baseRate, start, end)
}

// Calculate splits [start, end) at wall-clock hour marks and bills each
// segment by the weekday and hour it starts in. It returns 0 when end is not
// after start.
func (e *Engine) Calculate(baseRate float64, start, end time.Time) float64 {
	if !start.Before(end) {
		return 0
	}

	loc := e.location()
	cursor := start.In(loc)
	end = end.In(loc)

	var total float64
	for cursor.Before(end) {
		next := nextHourMark(cursor)
		if next.After(end) {
			next = end
		}

		rate := baseRate
		if IsPeak(cursor) {
			rate *= PeakMultiplier
		}
		total += rate * next.Sub(cursor).Hours()

		cursor = next
	}

	return Round(total)
}

func (e *Engine) IsPeak(t time.Time) bool {
	return IsPeak(t.In(e.location()))
}

func (e *Engine) location() *time.Location {
	if e == nil || e.Location == nil {
		return time.UTC
	}
	return e.Location
}

// IsPeak reports whether t falls in a weekday peak window, using t's own location.
func IsPeak(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	hour := t.Hour()
	for _, w := range peakWindows {
		if hour >= w.from && hour < w.to {
			return true
		}
	}
	return false
}

// Round rounds to two decimals, halves away from zero.
func Round(x float64) float64 {
	return math.Round(x*100) / 100
}

func nextHourMark(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
	// Zones with sub-hour offset changes can normalize to a mark at or before t.
	if !next.After(t) {
		next = t.Truncate(time.Hour).Add(time.Hour)
		if !next.After(t) {
			next = t.Add(time.Hour)
		}
	}
	return next
}
