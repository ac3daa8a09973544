package list_businesses

import (
	"net/http"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
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

// Handle GET /api/v1/businesses?search=&category=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	businesses, err := h.service.List(r.Context(), &models.ListRequest{
		Search:   query.Get("search"),
		Category: query.Get("category"),
	})
	if err != nil {
		h.logger.Error("GET /businesses - Failed to list businesses: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses - Found %d businesses", len(businesses))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBusinessesResponse(businesses))
}
