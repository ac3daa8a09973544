package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
	"github.com/m04kA/appointment-booking/pkg/types"
)

func TestBookingRepository_ActiveSlotUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()
	date := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			UserID: 1, BusinessID: 7, Date: date,
			StartTime: types.MustParseTimeOfDay("10:00"),
			EndTime:   types.MustParseTimeOfDay("10:30"),
			Status:    domain.StatusPending,
		}
	}

	first, err := repo.Create(ctx, newBooking())
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking())
	require.ErrorIs(t, err, bookingRepo.ErrSlotAlreadyBooked)

	_, err = repo.UpdateStatus(ctx, first.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking())
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, first.ID, domain.StatusPending, domain.StatusConfirmed)
	assert.ErrorIs(t, err, bookingRepo.ErrStatusChanged)
}

func TestBusinessRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	biz, err := store.Businesses().Create(ctx, &domain.Business{OwnerID: 2, Name: "Salon", WorkingHours: "09:00-17:00"})
	require.NoError(t, err)

	b, err := store.Bookings().Create(ctx, &domain.Booking{
		UserID: 1, BusinessID: biz.ID, Date: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustParseTimeOfDay("09:00"), EndTime: types.MustParseTimeOfDay("09:30"),
		Status: domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, store.Businesses().Delete(ctx, biz.ID))

	_, err = store.Bookings().GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	_, err = store.Businesses().GetByID(ctx, biz.ID)
	assert.ErrorIs(t, err, businessRepo.ErrBusinessNotFound)
}

func TestBusinessRepository_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Businesses()

	for _, b := range []*domain.Business{
		{OwnerID: 1, Name: "Barber Joe", Category: "beauty"},
		{OwnerID: 2, Name: "City Dental", Category: "health"},
		{OwnerID: 1, Name: "barbershop 2", Category: "beauty"},
		{OwnerID: 3, Name: "Nails", Category: "beauty"},
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	found, err := repo.List(ctx, domain.BusinessesFilter{Search: "BARBER"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Barber Joe", found[0].Name)
	assert.Equal(t, "barbershop 2", found[1].Name)

	owner := int64(1)
	total, err := repo.Count(ctx, domain.BusinessesFilter{Category: "beauty", OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	page, err := repo.List(ctx, domain.BusinessesFilter{Category: "beauty", Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Nails", page[0].Name)

	empty, err := repo.List(ctx, domain.BusinessesFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
