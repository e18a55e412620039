package list_resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/resources"
)

const (
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidCategory = "неизвестное направление услуг"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources
// Query params: category, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	activeOnly := true
	if s := r.URL.Query().Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /resources - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		activeOnly = !includeInactive
	}

	result, err := h.service.List(r.Context(), category, activeOnly)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /resources - Invalid category: %q", category)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /resources - Failed to list resources: category=%q, error=%v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources - Resources retrieved successfully: category=%q, count=%d", category, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
