package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступ запрещен"
	msgModified         = "бронирование было изменено, повторите запрос"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	booking, err := h.service.Cancel(r.Context(), principal, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgModified)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, err.Error())
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, by user_id=%d", bookingID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(booking))
}
