package get_available_slots

import (
	"github.com/m04kA/appointment-booking/internal/domain"
	getAvailableSlots "github.com/m04kA/appointment-booking/internal/usecase/get_available_slots"
)

// SlotResponse слот с признаком доступности
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	BusinessID int64          `json:"businessId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.Start.String(),
			EndTime:   s.End.String(),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
