package domain

import "time"

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
)

// BookingEvent is published after a booking change has been committed
type BookingEvent struct {
	ID             string           `json:"eventId"`
	Type           BookingEventType `json:"type"`
	BookingID      int64            `json:"bookingId"`
	BusinessID     int64            `json:"businessId"`
	UserID         int64            `json:"userId"`
	Date           string           `json:"date"`
	StartTime      string           `json:"startTime"`
	Status         BookingStatus    `json:"status"`
	PreviousStatus BookingStatus    `json:"previousStatus,omitempty"`
	ActorID        int64            `json:"actorId"`
	OccurredAt     time.Time        `json:"occurredAt"`
}

// NewBookingEvent builds an event from the booking's current state.
// ID is assigned by the publisher.
func NewBookingEvent(eventType BookingEventType, b *Booking, previous BookingStatus, actorID int64, at time.Time) BookingEvent {
	return BookingEvent{
		Type:           eventType,
		BookingID:      b.ID,
		BusinessID:     b.BusinessID,
		UserID:         b.UserID,
		Date:           b.Date.Format(DateFormat),
		StartTime:      b.StartTime.String(),
		Status:         b.Status,
		PreviousStatus: previous,
		ActorID:        actorID,
		OccurredAt:     at.UTC(),
	}
}
