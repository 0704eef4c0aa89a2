package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

var testDate = time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

func newBooking(fieldID uuid.UUID, start types.TimeString, status domain.BookingStatus) *domain.Booking {
	end, _ := start.AddMinutes(60)
	return &domain.Booking{
		FieldID:    fieldID,
		UserID:     uuid.New(),
		Date:       testDate,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		TotalPrice: 60,
	}
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Bookings()
	fieldID := uuid.New()

	created, err := repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00:00"), got.EndTime)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingRepository_CreateRejectsActiveDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()
	fieldID := uuid.New()

	_, err := repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending))
	assert.ErrorIs(t, err, booking.ErrSlotTaken)

	// другое поле и другое время не конфликтуют
	_, err = repo.Create(ctx, newBooking(uuid.New(), "10:00:00", domain.StatusPending))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(fieldID, "11:00:00", domain.StatusPending))
	assert.NoError(t, err)
}

func TestBookingRepository_CancelledFreesUniqueSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()
	fieldID := uuid.New()

	first, err := repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending))
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, first.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	_, err = repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending))
	assert.NoError(t, err)
}

func TestBookingRepository_ListByFieldAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()
	fieldID := uuid.New()

	_, err := repo.Create(ctx, newBooking(fieldID, "15:00:00", domain.StatusConfirmed))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(fieldID, "09:00:00", domain.StatusPending))
	require.NoError(t, err)
	other := newBooking(fieldID, "09:00:00", domain.StatusConfirmed)
	other.Date = testDate.AddDate(0, 0, 1)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	all, err := repo.ListByFieldAndDate(ctx, fieldID, testDate, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, types.TimeString("09:00:00"), all[0].StartTime)
	assert.Equal(t, types.TimeString("15:00:00"), all[1].StartTime)

	confirmed, err := repo.ListByFieldAndDate(ctx, fieldID, testDate, []domain.BookingStatus{domain.StatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, types.TimeString("15:00:00"), confirmed[0].StartTime)
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	created, err := repo.Create(ctx, newBooking(uuid.New(), "10:00:00", domain.StatusPending))
	require.NoError(t, err)

	created.Status = domain.StatusConfirmed

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestStore_DoSerializableRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Bookings()
	fieldID := uuid.New()
	boom := errors.New("boom")

	err := store.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, newBooking(fieldID, "10:00:00", domain.StatusPending)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.ListByFieldAndDate(ctx, fieldID, testDate, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_DoSerializableNested(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	calls := 0
	err := store.DoSerializable(ctx, func(ctx context.Context) error {
		return store.DoSerializable(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFieldRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seeded := SeedDemoFields(store)
	require.Len(t, seeded, 3)

	repo := store.Fields()

	got, err := repo.GetByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Central Park Football Pitch", got.Name)
	assert.Contains(t, got.Amenities, "Floodlights")

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, field.ErrFieldNotFound)

	all, err := repo.List(ctx, domain.FieldsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Central Park Football Pitch", all[0].Name)

	tennis := domain.SportTennis
	filtered, err := repo.List(ctx, domain.FieldsFilter{SportType: &tennis})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Riverside Tennis Court", filtered[0].Name)

	priced, err := repo.List(ctx, domain.FieldsFilter{MinPrice: ptr.Ptr(40.0), MaxPrice: ptr.Ptr(50.0)})
	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, domain.SportBasketball, priced[0].SportType)

	searched, err := repo.List(ctx, domain.FieldsFilter{Query: "RIVER"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
}
