package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/appointment-booking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidationFailed)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("create_booking: business not found: %w", domain.ErrNotFound)

	// ErrSlotNotOffered возвращается, когда startTime не является началом сгенерированного слота
	ErrSlotNotOffered = fmt.Errorf("create_booking: start time is not a slot of this business: %w", domain.ErrSlotUnavailable)

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = fmt.Errorf("create_booking: slot already booked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
