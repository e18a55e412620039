package add_category_invites

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
	msgCategoryNotFound   = "категория клиентов не найдена"
	msgMeetingClosed      = "встреча уже состоялась, приглашения не принимаются"
	msgInvalidData        = "некорректный ID категории"
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

// Handle POST /api/v1/proposed-meetings/{meetingId}/category-invites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req models.AddCategoryInvitesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddCategoryInvites(r.Context(), meetingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrCategoryNotFound):
			h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Category not found: category_id=%d", req.CategoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, meetings.ErrMeetingClosed):
			h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Meeting closed: meeting_id=%d", meetingID)
			handlers.RespondConflict(w, msgMeetingClosed)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("POST /proposed-meetings/{id}/category-invites - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /proposed-meetings/{id}/category-invites - Failed to add invites: meeting_id=%d, category_id=%d, error=%v",
				meetingID, req.CategoryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /proposed-meetings/{id}/category-invites - Invites added successfully: meeting_id=%d, category_id=%d, added=%d",
		meetingID, req.CategoryID, result.Added)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
