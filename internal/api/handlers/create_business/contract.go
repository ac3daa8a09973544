package create_business

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

type BusinessService interface {
	Create(ctx context.Context, principal domain.Principal, req *models.CreateBusinessRequest) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
