package update_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyUpdate        = "не передано ни одного поля для обновления"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные настройки календаря"
	msgUnavailable        = "настройки календаря недоступны"
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

// Handle PUT /api/v1/calendar/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /calendar/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCalendarSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsEmpty() {
		h.logger.Warn("PUT /calendar/settings - Empty update: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgEmptyUpdate)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /calendar/settings - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, calendar.ErrUnavailable):
			h.logger.Error("PUT /calendar/settings - Settings unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PUT /calendar/settings - Failed to update settings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar/settings - Settings updated successfully: user_id=%d, open_days_ahead=%d",
		userID, result.OpenDaysAhead)
	handlers.RespondJSON(w, http.StatusOK, result)
}
