package businesses

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error)
	List(ctx context.Context, filter domain.BusinessesFilter) ([]*domain.Business, error)
	Count(ctx context.Context, filter domain.BusinessesFilter) (int, error)
	Update(ctx context.Context, business *domain.Business) (*domain.Business, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
