package list_all_businesses

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступно только администратору"
	msgInvalidQuery     = "некорректные параметры запроса"
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

// Handle GET /api/v1/admin/businesses?page=&limit=&search=&category=&owner=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/businesses - %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	page, err := h.service.ListAll(r.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /admin/businesses - Access denied: user_id=%d", principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /admin/businesses - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /admin/businesses - Failed to list businesses: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/businesses - page=%d, limit=%d, total=%d", page.Page, page.Limit, page.Total)
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
	ownerID, err := handlers.QueryID(r, "owner")
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	return &models.ListAllRequest{
		Page:     page,
		Limit:    limit,
		Search:   query.Get("search"),
		Category: query.Get("category"),
		OwnerID:  ownerID,
	}, nil
}
