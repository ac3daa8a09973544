package get_business

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

type BusinessService interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
