package list_all_businesses

import (
	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

// BusinessesPageResponse HTTP модель страницы бизнесов
type BusinessesPageResponse struct {
	Total      int                          `json:"total"`
	Page       int                          `json:"page"`
	Limit      int                          `json:"limit"`
	Businesses []*handlers.BusinessResponse `json:"businesses"`
}

// FromServicePage конвертирует страницу сервиса в HTTP модель
func FromServicePage(page *models.BusinessesPage) *BusinessesPageResponse {
	return &BusinessesPageResponse{
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		Businesses: handlers.NewBusinessesResponse(page.Businesses),
	}
}
