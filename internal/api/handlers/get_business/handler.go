package get_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/domain"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNotFound          = "бизнес не найден"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	business, err := h.service.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id} - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessResponse(business))
}
