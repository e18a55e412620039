package get_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar/models"
)

const (
	msgUnavailable = "настройки календаря недоступны"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/settings
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, calendar.ErrUnavailable) {
			h.logger.Error("GET /calendar/settings - Settings unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)
			return
		}
		h.logger.Error("GET /calendar/settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/settings - Settings retrieved successfully: open_days_ahead=%d", settings.OpenDaysAhead)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettings(settings))
}
