package delete_meeting

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
	msgBooked           = "по встрече создана активная запись, сначала отмените её"
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

// Handle DELETE /api/v1/proposed-meetings/{meetingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /proposed-meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	if err := h.service.Delete(r.Context(), meetingID); err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("DELETE /proposed-meetings/{id} - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrMeetingBooked):
			h.logger.Warn("DELETE /proposed-meetings/{id} - Meeting has live appointment: meeting_id=%d", meetingID)
			handlers.RespondConflict(w, msgBooked)

		default:
			h.logger.Error("DELETE /proposed-meetings/{id} - Failed to delete meeting: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /proposed-meetings/{id} - Meeting deleted successfully: meeting_id=%d", meetingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
