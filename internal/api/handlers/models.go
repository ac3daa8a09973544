package handlers

import (
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// BookingResponse HTTP модель бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	BusinessID int64   `json:"businessId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// NewBookingResponse конвертирует доменное бронирование в HTTP модель
func NewBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		BusinessID: b.BusinessID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		Notes:      b.Notes,
		CreatedAt:  formatTimestamp(b.CreatedAt),
		UpdatedAt:  formatTimestamp(b.UpdatedAt),
	}
}

// NewBookingsResponse конвертирует список; пустой список кодируется как []
func NewBookingsResponse(bookings []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, NewBookingResponse(b))
	}
	return result
}

// BusinessResponse HTTP модель бизнеса
type BusinessResponse struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"ownerId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingHours string `json:"workingHours"`
	SlotDuration int    `json:"slotDuration"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// NewBusinessResponse конвертирует доменный бизнес в HTTP модель
func NewBusinessResponse(b *domain.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:           b.ID,
		OwnerID:      b.OwnerID,
		Name:         b.Name,
		Description:  b.Description,
		Category:     b.Category,
		Address:      b.Address,
		Phone:        b.Phone,
		Email:        b.Email,
		WorkingHours: b.WorkingHours,
		SlotDuration: b.SlotDuration(),
		IsActive:     b.IsActive,
		CreatedAt:    formatTimestamp(b.CreatedAt),
		UpdatedAt:    formatTimestamp(b.UpdatedAt),
	}
}

// NewBusinessesResponse конвертирует список; пустой список кодируется как []
func NewBusinessesResponse(businesses []*domain.Business) []*BusinessResponse {
	result := make([]*BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		result = append(result, NewBusinessResponse(b))
	}
	return result
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
