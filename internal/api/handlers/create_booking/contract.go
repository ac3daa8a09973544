package create_booking

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
	createBooking "github.com/m04kA/appointment-booking/internal/usecase/create_booking"
)

// CreateBookingUseCase use case создания бронирования
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
