package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/domain"
	getAvailableSlots "github.com/m04kA/appointment-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingDate       = "параметр date обязателен (YYYY-MM-DD)"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/slots - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /businesses/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /businesses/{id}/slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/slots - Failed to get slots: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/slots - business_id=%d, date=%s, slots=%d", businessID, date, len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
