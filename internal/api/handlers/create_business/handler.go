package create_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "создавать бизнес могут только роли business и admin"
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

// Handle POST /api/v1/businesses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	business, err := h.service.Create(r.Context(), principal, &models.CreateBusinessRequest{
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
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /businesses - Access denied: user_id=%d, role=%s", principal.ID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("POST /businesses - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /businesses - Failed to create business: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses - Business created: business_id=%d, owner_id=%d", business.ID, business.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBusinessResponse(business))
}
