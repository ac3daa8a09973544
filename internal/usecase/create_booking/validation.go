package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/pkg/types"
)

// validatedRequest разобранные и проверенные входные данные
type validatedRequest struct {
	date      time.Time
	startTime types.TimeOfDay
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*validatedRequest, error) {
	if req.Principal.ID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, req.Date)
	}

	startTime, err := types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &validatedRequest{date: date, startTime: startTime}, nil
}
