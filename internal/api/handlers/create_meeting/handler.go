package create_meeting

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResourceNotFound   = "ресурс не найден или выключен"
	msgInvalidData        = "некорректные данные встречи"
)

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/proposed-meetings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /proposed-meetings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrResourceNotFound):
			h.logger.Warn("POST /proposed-meetings - Resource not found: %v", err)
			handlers.RespondBadRequest(w, msgResourceNotFound)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("POST /proposed-meetings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /proposed-meetings - Failed to create meeting: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /proposed-meetings - Meeting created successfully: meeting_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
