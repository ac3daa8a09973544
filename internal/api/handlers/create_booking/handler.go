package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	createBooking "github.com/m04kA/appointment-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgBusinessNotFound   = "бизнес не найден"
	msgSlotUnavailable    = "время не совпадает ни с одним слотом бизнеса"
	msgSlotTaken          = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &createBooking.Request{
		Principal:  principal,
		BusinessID: req.BusinessID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondSlotUnavailable(w, msgSlotUnavailable)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Slot taken: business_id=%d, date=%s, start=%s", req.BusinessID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, business_id=%d, error=%v",
				principal.ID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, business_id=%d",
		booking.ID, principal.ID, booking.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBookingResponse(booking))
}
