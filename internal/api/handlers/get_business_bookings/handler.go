package get_business_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingPrincipal  = "требуется авторизация"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "просматривать бронирования может только владелец бизнеса или администратор"
	msgInvalidFilter     = "некорректный фильтр"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings?status=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	bookings, err := h.service.ListForBusiness(r.Context(), principal, &models.ListBusinessRequest{
		BusinessID: businessID,
		Status:     handlers.QueryString(r, "status"),
		Date:       handlers.QueryString(r, "date"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /businesses/{id}/bookings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /businesses/{id}/bookings - Access denied: business_id=%d, user_id=%d", businessID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /businesses/{id}/bookings - Failed to list bookings: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - business_id=%d, count=%d", businessID, len(bookings))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingsResponse(bookings))
}
