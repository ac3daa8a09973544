package list_all_bookings

import (
	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

// BookingsPageResponse HTTP модель страницы бронирований
type BookingsPageResponse struct {
	Total    int                         `json:"total"`
	Page     int                         `json:"page"`
	Limit    int                         `json:"limit"`
	Bookings []*handlers.BookingResponse `json:"bookings"`
}

// FromServicePage конвертирует страницу сервиса в HTTP модель
func FromServicePage(page *models.BookingsPage) *BookingsPageResponse {
	return &BookingsPageResponse{
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
		Bookings: handlers.NewBookingsResponse(page.Bookings),
	}
}
