package get_my_bookings

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListMine(ctx context.Context, principal domain.Principal, req *models.ListMineRequest) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
