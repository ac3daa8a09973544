package business

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// Repository хранилище бизнесов, которое кэшируется
type Repository interface {
	Create(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error)
	List(ctx context.Context, filter domain.BusinessesFilter) ([]*domain.Business, error)
	Count(ctx context.Context, filter domain.BusinessesFilter) (int, error)
	Update(ctx context.Context, business *domain.Business) (*domain.Business, error)
	Delete(ctx context.Context, id int64) error
}

// Metrics счетчик обращений к кэшу
type Metrics interface {
	IncCache(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
