package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

const (
	msgMissingPrincipal  = "требуется авторизация"
	msgInvalidBusinessID = "некорректный параметр business"
	msgInvalidFilter     = "некорректный фильтр статуса"
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

// Handle GET /api/v1/bookings/mine?status=&business=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	businessID, err := handlers.QueryID(r, "business")
	if err != nil {
		h.logger.Warn("GET /bookings/mine - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	bookings, err := h.service.ListMine(r.Context(), principal, &models.ListMineRequest{
		Status:     handlers.QueryString(r, "status"),
		BusinessID: businessID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /bookings/mine - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings/mine - Failed to list bookings: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondDomainError(w, err, err.Error())
		}
		return
	}

	h.logger.Info("GET /bookings/mine - user_id=%d, count=%d", principal.ID, len(bookings))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingsResponse(bookings))
}
