package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/appointment-booking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking not found: %w", domain.ErrNotFound)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("bookings.service: business not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("bookings.service: access denied: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = fmt.Errorf("bookings.service: invalid input data: %w", domain.ErrValidationFailed)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("bookings.service: invalid status transition: %w", domain.ErrInvalidTransition)

	// ErrConcurrentUpdate возвращается, когда статус изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("bookings.service: booking was modified concurrently: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
