package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultPageLimit           = 10
)

// Business validation constants
const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxNotesLength         = 500
	MaxBusinessNameLength  = 200
	MaxDescriptionLength   = 2000
	MaxCategoryLength      = 100
	MaxAddressLength       = 300
	MaxPhoneLength         = 32
	MaxEmailLength         = 254
	MaxPageLimit           = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
