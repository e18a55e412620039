package add_invites

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

const (
	msgInvalidMeetingID   = "некорректный ID встречи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "встреча не найдена"
	msgMeetingClosed      = "встреча уже состоялась, приглашения не принимаются"
	msgCustomerNotFound   = "часть клиентов не найдена"
	msgInvalidData        = "некорректный список клиентов"
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

// Handle POST /api/v1/proposed-meetings/{meetingId}/invites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /proposed-meetings/{id}/invites - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req models.AddInvitesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /proposed-meetings/{id}/invites - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddInvites(r.Context(), meetingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("POST /proposed-meetings/{id}/invites - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrMeetingClosed):
			h.logger.Warn("POST /proposed-meetings/{id}/invites - Meeting closed: meeting_id=%d", meetingID)
			handlers.RespondConflict(w, msgMeetingClosed)

		case errors.Is(err, meetings.ErrCustomerNotFound):
			h.logger.Warn("POST /proposed-meetings/{id}/invites - Customers not found: %v", err)
			handlers.RespondBadRequest(w, msgCustomerNotFound)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("POST /proposed-meetings/{id}/invites - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /proposed-meetings/{id}/invites - Failed to add invites: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /proposed-meetings/{id}/invites - Invites added successfully: meeting_id=%d, added=%d, skipped=%d",
		meetingID, result.Added, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
