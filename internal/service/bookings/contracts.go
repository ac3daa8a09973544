package bookings

import (
	"context"
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (time.Time, error)
}

// BusinessRepository интерфейс репозитория бизнесов (для проверки владельца)
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует события бронирований
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent)
}

// Metrics счетчик переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
