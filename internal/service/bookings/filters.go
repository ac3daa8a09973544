package bookings

import (
	"fmt"
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// parseStatusFilter разбирает необязательный фильтр по статусу
func parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, ok := domain.ParseBookingStatus(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *raw)
	}
	return &status, nil
}

// parseDateFilter разбирает необязательную дату YYYY-MM-DD
func parseDateFilter(name string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", ErrInvalidInput, name, *raw)
	}
	return &d, nil
}

// normalizePage приводит page/limit к допустимым значениям
func normalizePage(page, limit int) (int, int, error) {
	if page < 0 || limit < 0 {
		return 0, 0, fmt.Errorf("%w: page and limit must not be negative", ErrInvalidInput)
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit, nil
}
