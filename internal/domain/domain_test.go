package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{StartTime: "10:00:00", EndTime: "11:00:00"}

	assert.True(t, b.Overlaps("10:00:00", "11:00:00"))
	assert.True(t, b.Overlaps("10:30:00", "11:30:00"))
	assert.True(t, b.Overlaps("09:30:00", "10:30:00"))
	assert.False(t, b.Overlaps("11:00:00", "12:00:00"))
	assert.False(t, b.Overlaps("09:00:00", "10:00:00"))
}

func TestBooking_OverlapsAcrossMidnight(t *testing.T) {
	// 23:00 + 1ч = 00:00 следующих суток
	late := &Booking{StartTime: "23:00:00", EndTime: "00:00:00"}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"same slot", "23:00:00", "00:00:00", true},
		{"half hour earlier", "22:30:00", "23:30:00", true},
		{"half hour later", "23:30:00", "00:30:00", true},
		{"adjacent before", "22:00:00", "23:00:00", false},
		{"early morning", "00:00:00", "01:00:00", false},
		{"midday", "12:00:00", "13:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, late.Overlaps(types.TimeString(tt.start), types.TimeString(tt.end)))
		})
	}

	// Существующее бронирование 22:30-23:30 и новое 23:00-00:00
	halfPast := &Booking{StartTime: "22:30:00", EndTime: "23:30:00"}
	assert.True(t, halfPast.Overlaps("23:00:00", "00:00:00"))
}

func TestBooking_ActiveAndTerminal(t *testing.T) {
	for _, status := range AllStatuses {
		b := &Booking{Status: status}
		assert.Equal(t, status != StatusCancelled, b.IsActive(), status)
		assert.Equal(t, status != StatusPending, b.IsTerminal(), status)
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("approved")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestConflictPolicy_Blocks(t *testing.T) {
	cancelled := &Booking{Status: StatusCancelled}
	pending := &Booking{Status: StatusPending}

	assert.True(t, ConflictAnyStatus.Blocks(cancelled))
	assert.True(t, ConflictAnyStatus.Blocks(pending))
	assert.False(t, ConflictActiveOnly.Blocks(cancelled))
	assert.True(t, ConflictActiveOnly.Blocks(pending))
}

func TestScheduleConfig_CanonicalSlots(t *testing.T) {
	slots := DefaultScheduleConfig().CanonicalSlots()

	require.Len(t, slots, 14)
	assert.Equal(t, types.TimeString("08:00:00"), slots[0])
	assert.Equal(t, types.TimeString("21:00:00"), slots[13])
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestScheduleConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultScheduleConfig().Validate())

	pastMidnight := DefaultScheduleConfig()
	pastMidnight.SlotCount = 17
	assert.ErrorIs(t, pastMidnight.Validate(), ErrInvalidSchedule)

	badPolicy := DefaultScheduleConfig()
	badPolicy.ConflictPolicy = "sometimes"
	assert.ErrorIs(t, badPolicy.Validate(), ErrInvalidSchedule)

	noSlots := DefaultScheduleConfig()
	noSlots.SlotCount = 0
	assert.ErrorIs(t, noSlots.Validate(), ErrInvalidSchedule)
}

func TestIdentity(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())
	assert.False(t, Anonymous.IsAdmin())

	// роль без пользователя не даёт прав администратора
	assert.False(t, Identity{Role: RoleAdmin}.IsAdmin())

	user := Identity{UserID: uuid.New(), Role: RoleUser}
	assert.True(t, user.IsAuthenticated())
	assert.False(t, user.IsAdmin())

	admin := Identity{UserID: uuid.New(), Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())
}

func TestSportType_IsValid(t *testing.T) {
	assert.True(t, SportBadminton.IsValid())
	assert.False(t, SportType("curling").IsValid())
}
