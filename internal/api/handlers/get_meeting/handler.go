package get_meeting

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgNotFound         = "встреча не найдена"
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

// Handle GET /api/v1/proposed-meetings/{meetingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /proposed-meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), meetingID)
	if err != nil {
		if errors.Is(err, meetings.ErrMeetingNotFound) {
			h.logger.Warn("GET /proposed-meetings/{id} - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /proposed-meetings/{id} - Failed to get meeting: meeting_id=%d, error=%v", meetingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /proposed-meetings/{id} - Meeting retrieved successfully: meeting_id=%d, invites=%d",
		meetingID, len(result.Invites))
	handlers.RespondJSON(w, http.StatusOK, result)
}
