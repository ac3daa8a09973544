package delete_business

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

type BusinessService interface {
	Delete(ctx context.Context, principal domain.Principal, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
