package domain

import "time"

// Business is a schedulable resource: operating hours and slot length,
// plus the public profile shown in listings.
// WorkingHours is stored as given ("HH:MM-HH:MM") and may be empty or
// malformed; slot generation treats such values as "no slots".
type Business struct {
	ID                  int64
	OwnerID             int64
	Name                string
	Description         string
	Category            string
	Address             string
	Phone               string
	Email               string
	WorkingHours        string
	SlotDurationMinutes int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SlotDuration returns the configured slot length, or the default when unset
func (b *Business) SlotDuration() int {
	if b.SlotDurationMinutes == 0 {
		return DefaultSlotDurationMinutes
	}
	return b.SlotDurationMinutes
}

// BusinessesFilter selects businesses for listings. Zero-valued fields do not filter.
type BusinessesFilter struct {
	// Search is a case-insensitive substring of the name
	Search   string
	Category string
	OwnerID  *int64

	Limit  int // 0 = no limit
	Offset int
}
