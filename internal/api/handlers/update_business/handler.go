package update_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgNotFound           = "бизнес не найден"
	msgForbidden          = "изменять бизнес может только владелец или администратор"
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

// Handle PATCH /api/v1/businesses/{businessId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpdateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /businesses/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	business, err := h.service.Update(r.Context(), principal, &models.UpdateBusinessRequest{
		ID:                  businessID,
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		Address:             req.Address,
		Phone:               req.Phone,
		Email:               req.Email,
		WorkingHours:        req.WorkingHours,
		SlotDurationMinutes: req.SlotDuration,
		IsActive:            req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PATCH /businesses/{id} - Access denied: business_id=%d, user_id=%d", businessID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("PATCH /businesses/{id} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /businesses/{id} - Failed to update business: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{id} - Business updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessResponse(business))
}
