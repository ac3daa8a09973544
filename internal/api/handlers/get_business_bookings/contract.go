package get_business_bookings

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListForBusiness(ctx context.Context, principal domain.Principal, req *models.ListBusinessRequest) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
