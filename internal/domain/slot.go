package domain

import "github.com/m04kA/appointment-booking/pkg/types"

// Slot is a half-open interval [Start, End) within one business day
type Slot struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// SlotAvailability is a generated slot annotated with whether it can be booked
type SlotAvailability struct {
	Slot
	Available bool
}

// GenerateSlots splits workingHours ("HH:MM-HH:MM") into consecutive slots of
// slotDuration minutes. A trailing remainder shorter than one slot is dropped.
//
// Malformed or empty hours, end not after start, a non-positive duration and
// a window shorter than one slot all yield an empty (non-nil) slice.
func GenerateSlots(workingHours string, slotDuration int) []Slot {
	slots := []Slot{}
	if slotDuration < 1 {
		return slots
	}

	window, err := types.ParseTimeRange(workingHours)
	if err != nil || window.IsEmpty() {
		return slots
	}

	// Compared as plain minutes: cur+d never wraps past midnight here,
	// the loop stops once it would leave the window.
	end := window.End.Minutes()
	for cur := window.Start.Minutes(); cur+slotDuration <= end; cur += slotDuration {
		slots = append(slots, Slot{
			Start: types.TimeOfDay(cur),
			End:   types.TimeOfDay(cur + slotDuration),
		})
	}

	return slots
}

// FindSlot returns the generated slot starting at start, if any
func FindSlot(slots []Slot, start types.TimeOfDay) (Slot, bool) {
	for _, s := range slots {
		if s.Start == start {
			return s, true
		}
	}
	return Slot{}, false
}

// ResolveAvailability marks each slot unavailable when a non-cancelled
// booking starts at the same time. Bookings are expected to belong to the
// same business and date as the slots.
func ResolveAvailability(slots []Slot, bookings []*Booking) []SlotAvailability {
	taken := make(map[types.TimeOfDay]struct{}, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		taken[b.StartTime] = struct{}{}
	}

	result := make([]SlotAvailability, len(slots))
	for i, s := range slots {
		_, busy := taken[s.Start]
		result[i] = SlotAvailability{Slot: s, Available: !busy}
	}
	return result
}

// IsSlotTaken reports whether an active booking already starts at start
func IsSlotTaken(bookings []*Booking, start types.TimeOfDay) bool {
	for _, b := range bookings {
		if b != nil && b.IsActive() && b.StartTime == start {
			return true
		}
	}
	return false
}
