package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/pkg/psqlbuilder"
	"github.com/m04kA/appointment-booking/pkg/ptr"
)

func TestApplyFilter_Empty(t *testing.T) {
	query, args, err := applyFilter(psqlbuilder.Select("id").From(tableBookings), domain.BookingsFilter{}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings", query)
	assert.Empty(t, args)
}

func TestApplyFilter_AllFields(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	filter := domain.BookingsFilter{
		UserID:     ptr.Ptr(int64(5)),
		BusinessID: ptr.Ptr(int64(7)),
		Status:     ptr.Ptr(domain.StatusConfirmed),
		DateFrom:   &from,
		DateTo:     &to,
	}

	query, args, err := applyFilter(psqlbuilder.Select("id").From(tableBookings), filter).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM bookings WHERE user_id = $1 AND business_id = $2 AND status = $3 AND booking_date >= $4 AND booking_date <= $5",
		query)
	assert.Equal(t, []interface{}{int64(5), int64(7), domain.StatusConfirmed, from, to}, args)
}

func TestApplyFilter_ActiveOnly(t *testing.T) {
	day := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	query, args, err := applyFilter(
		psqlbuilder.Select("id").From(tableBookings),
		domain.BookingsFilter{BusinessID: ptr.Ptr(int64(3)), Date: &day, ActiveOnly: true},
	).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE business_id = $1 AND status <> $2 AND booking_date = $3", query)
	assert.Equal(t, []interface{}{int64(3), domain.StatusCancelled, day}, args)
}

func TestApplyFilter_StatusOverridesActiveOnly(t *testing.T) {
	query, _, err := applyFilter(
		psqlbuilder.Select("id").From(tableBookings),
		domain.BookingsFilter{Status: ptr.Ptr(domain.StatusCancelled), ActiveOnly: true},
	).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE status = $1", query)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
	assert.False(t, isUniqueViolation(nil))
}
