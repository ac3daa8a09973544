package domain

import (
	"time"

	"github.com/m04kA/appointment-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions is the booking lifecycle graph. Nothing leaves cancelled.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// IsValid returns true if s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether a booking in status s may move to next.
// A same-status move is not a transition and returns false.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(raw)
	return s, s.IsValid()
}

// Booking is a reservation of one slot of one business on one date
type Booking struct {
	ID         int64
	UserID     int64
	BusinessID int64
	Date       time.Time // date only, UTC midnight
	StartTime  types.TimeOfDay
	EndTime    types.TimeOfDay
	Status     BookingStatus
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// BookingsFilter selects bookings for listings. Zero-valued fields do not filter.
type BookingsFilter struct {
	UserID     *int64
	BusinessID *int64
	Status     *BookingStatus
	Date       *time.Time // exact day
	DateFrom   *time.Time // inclusive
	DateTo     *time.Time // inclusive

	// ActiveOnly excludes cancelled bookings when Status is not set
	ActiveOnly bool

	Limit  int // 0 = no limit
	Offset int
}
