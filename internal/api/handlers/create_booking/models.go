package create_booking

// CreateBookingRequest HTTP модель запроса
type CreateBookingRequest struct {
	BusinessID int64   `json:"businessId"`
	Date       string  `json:"date"`      // "2026-02-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}
