package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		start    time.Time
		end      time.Time
		expected float64
	}{
		{
			name:     "tuesday fully peak",
			rate:     100,
			start:    utc(2024, time.December, 31, 10, 0),
			end:      utc(2024, time.December, 31, 12, 0),
			expected: 300,
		},
		{
			name:     "monday spanning off-peak into peak",
			rate:     100,
			start:    utc(2024, time.January, 1, 9, 0),
			end:      utc(2024, time.January, 1, 11, 0),
			expected: 250,
		},
		{
			name:     "off-peak is linear",
			rate:     500,
			start:    utc(2024, time.January, 2, 6, 0),
			end:      utc(2024, time.January, 2, 9, 0),
			expected: 1500,
		},
		{
			name:     "partial off-peak segment",
			rate:     600,
			start:    utc(2024, time.January, 2, 7, 0),
			end:      utc(2024, time.January, 2, 7, 20),
			expected: 200,
		},
		{
			name:     "13:00 is not peak",
			rate:     100,
			start:    utc(2024, time.January, 3, 13, 0),
			end:      utc(2024, time.January, 3, 14, 0),
			expected: 100,
		},
		{
			name:     "19:00 is not peak",
			rate:     100,
			start:    utc(2024, time.January, 3, 18, 0),
			end:      utc(2024, time.January, 3, 20, 0),
			expected: 250,
		},
		{
			name:     "segments align to hour marks",
			rate:     100,
			start:    utc(2024, time.January, 1, 9, 30),
			end:      utc(2024, time.January, 1, 10, 30),
			expected: 125,
		},
		{
			name:     "saturday peak hours bill at base rate",
			rate:     100,
			start:    utc(2024, time.January, 6, 10, 0),
			end:      utc(2024, time.January, 6, 12, 0),
			expected: 200,
		},
		{
			name:     "friday night into saturday",
			rate:     100,
			start:    utc(2024, time.January, 5, 23, 0),
			end:      utc(2024, time.January, 6, 1, 0),
			expected: 200,
		},
		{
			name:     "sunday into monday peak",
			rate:     100,
			start:    utc(2024, time.January, 7, 22, 0),
			end:      utc(2024, time.January, 8, 11, 0),
			expected: 1350,
		},
		{
			name:     "rounds to two decimals",
			rate:     100,
			start:    utc(2024, time.January, 2, 6, 0),
			end:      utc(2024, time.January, 2, 6, 20),
			expected: 33.33,
		},
		{
			name:     "zero length",
			rate:     100,
			start:    utc(2024, time.January, 2, 6, 0),
			end:      utc(2024, time.January, 2, 6, 0),
			expected: 0,
		},
		{
			name:     "reversed interval",
			rate:     100,
			start:    utc(2024, time.January, 2, 8, 0),
			end:      utc(2024, time.January, 2, 6, 0),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculatePrice(tt.rate, tt.start, tt.end), 0.001)
		})
	}
}

func TestEngine_Location(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	engine := NewEngine(ist)

	// 04:30Z is 10:00 in IST on a Tuesday.
	start := utc(2024, time.December, 31, 4, 30)
	end := utc(2024, time.December, 31, 6, 30)

	assert.InDelta(t, 300.0, engine.Calculate(100, start, end), 0.001)
	assert.InDelta(t, 200.0, CalculatePrice(100, start, end), 0.001)
}

func TestEngine_NilLocationDefaultsToUTC(t *testing.T) {
	engine := &Engine{}
	start := utc(2024, time.December, 31, 10, 0)
	assert.InDelta(t, 300.0, engine.Calculate(100, start, start.Add(2*time.Hour)), 0.001)
	assert.True(t, engine.IsPeak(start))
}

func TestIsPeak(t *testing.T) {
	tests := []struct {
		at       time.Time
		expected bool
	}{
		{utc(2024, time.January, 1, 9, 59), false},
		{utc(2024, time.January, 1, 10, 0), true},
		{utc(2024, time.January, 1, 12, 59), true},
		{utc(2024, time.January, 1, 13, 0), false},
		{utc(2024, time.January, 1, 16, 0), true},
		{utc(2024, time.January, 1, 18, 59), true},
		{utc(2024, time.January, 1, 19, 0), false},
		{utc(2024, time.January, 7, 11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.at.Format(time.RFC3339), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPeak(tt.at))
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.13, Round(0.125))
	assert.Equal(t, 2.68, Round(2.675000001))
	assert.Equal(t, 300.0, Round(299.999999))
}
