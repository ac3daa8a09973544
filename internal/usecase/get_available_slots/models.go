package get_available_slots

import (
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	BusinessID int64  // ID бизнеса
	Date       string // Дата "YYYY-MM-DD"
}

// Response слоты дня с признаком доступности, в порядке времени
type Response struct {
	BusinessID int64
	Date       time.Time
	Slots      []domain.SlotAvailability
}
