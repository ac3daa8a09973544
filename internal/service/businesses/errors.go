package businesses

import (
	"errors"
	"fmt"

	"github.com/m04kA/appointment-booking/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("businesses.service: business not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("businesses.service: access denied: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("businesses.service: invalid input data: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("businesses.service: internal error")
)
