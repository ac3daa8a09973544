package delete_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingPrincipal  = "требуется авторизация"
	msgNotFound          = "бизнес не найден"
	msgForbidden         = "удалять бизнес может только администратор"
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

// Handle DELETE /api/v1/businesses/{businessId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if err := h.service.Delete(r.Context(), principal, businessID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("DELETE /businesses/{id} - Access denied: business_id=%d, user_id=%d", businessID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id} - Failed to delete business: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id} - Business deleted: business_id=%d, by user_id=%d", businessID, principal.ID)
	w.WriteHeader(http.StatusNoContent)
}
