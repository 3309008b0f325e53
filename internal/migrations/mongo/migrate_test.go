package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRooms(t *testing.T) {
	seen := map[string]bool{}
	for _, room := range SeedRooms {
		assert.False(t, seen[room.ID], "duplicate room id %s", room.ID)
		seen[room.ID] = true
		assert.NotEmpty(t, room.Name)
		assert.Positive(t, room.BaseHourlyRate)
		assert.Positive(t, room.Capacity)
	}
	assert.Len(t, SeedRooms, 5)
}

func TestCollectionsHaveValidators(t *testing.T) {
	names := map[string]bool{}
	for _, def := range collections {
		names[def.Name] = true
		require.NotNil(t, def.Validator, def.Name)
		assert.Contains(t, def.Validator, "$jsonSchema")
	}

	for _, name := range []string{RoomsCollection, BookingsCollection, BookingLocksCollection, BookingEventsCollection} {
		assert.True(t, names[name], "missing collection %s", name)
	}
}

func TestBookingLocksExpire(t *testing.T) {
	require.Len(t, BookingLocksIndexes, 1)
	opts := BookingLocksIndexes[0].Options
	require.NotNil(t, opts)
	require.NotNil(t, opts.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *opts.ExpireAfterSeconds)
}
