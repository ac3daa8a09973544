package get_booking

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

type BookingService interface {
	GetByID(ctx context.Context, principal domain.Principal, id int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
