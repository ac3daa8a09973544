package list_all_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступно только администратору"
	msgInvalidQuery     = "некорректные параметры запроса"
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

// Handle GET /api/v1/admin/bookings?page=&limit=&business=&user=&status=&dateFrom=&dateTo=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	page, err := h.service.ListAll(r.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /admin/bookings - Access denied: user_id=%d", principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /admin/bookings - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - page=%d, limit=%d, total=%d", page.Page, page.Limit, page.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServicePage(page))
}

func parseQuery(r *http.Request) (*models.ListAllRequest, error) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	businessID, err := handlers.QueryID(r, "business")
	if err != nil {
		return nil, err
	}
	userID, err := handlers.QueryID(r, "user")
	if err != nil {
		return nil, err
	}

	return &models.ListAllRequest{
		Page:       page,
		Limit:      limit,
		BusinessID: businessID,
		UserID:     userID,
		Status:     handlers.QueryString(r, "status"),
		DateFrom:   handlers.QueryString(r, "dateFrom"),
		DateTo:     handlers.QueryString(r, "dateTo"),
	}, nil
}
