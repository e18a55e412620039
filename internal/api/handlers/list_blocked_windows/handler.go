package list_blocked_windows

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/resources"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidPeriod     = "некорректный период: from и to обязательны в формате RFC3339, from < to"
	msgNotFound          = "ресурс не найден"
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

// Handle GET /api/v1/resources/{resourceId}/blocked-windows
// Query params: from, to (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/blocked-windows - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	from, errFrom := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	to, errTo := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /resources/{id}/blocked-windows - Invalid period: from=%v, to=%v", errFrom, errTo)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListBlockedWindows(r.Context(), resourceID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/blocked-windows - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/blocked-windows - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /resources/{id}/blocked-windows - Failed to list windows: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/blocked-windows - Windows retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(result.BlockedWindows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
