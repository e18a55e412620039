package send_invites

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	sendInvites "github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

const (
	msgInvalidMeetingID  = "некорректный ID встречи"
	msgInvalidInviteID   = "некорректный ID приглашения"
	msgInvalidCategoryID = "некорректный ID категории"
	msgMeetingNotFound   = "встреча не найдена"
	msgInviteNotFound    = "приглашение не найдено"
	msgMeetingClosed     = "встреча уже состоялась, отправка невозможна"
	msgInviteClosed      = "приглашение уже принято или устарело"
	msgInvalidData       = "некорректные параметры отправки"
)

type Handler struct {
	useCase SendInvitesUseCase
	logger  Logger
}

func NewHandler(useCase SendInvitesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// SendOne POST /api/v1/invites/{inviteId}/send
// Недоставленное приглашение отвечает 502, результат доставки всё равно в теле
func (h *Handler) SendOne(w http.ResponseWriter, r *http.Request) {
	const route = "POST /invites/{id}/send"

	inviteID, err := strconv.ParseInt(mux.Vars(r)["inviteId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid invite ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInviteID)
		return
	}

	result, err := h.useCase.SendOne(r.Context(), inviteID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusBadGateway
		h.logger.Warn("%s - Invite not delivered: invite_id=%d", route, inviteID)
	} else {
		h.logger.Info("%s - Invite delivered: invite_id=%d", route, inviteID)
	}
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

// SendAll POST /api/v1/proposed-meetings/{meetingId}/invites/send-all
func (h *Handler) SendAll(w http.ResponseWriter, r *http.Request) {
	const route = "POST /proposed-meetings/{id}/invites/send-all"

	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid meeting ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	result, err := h.useCase.SendAll(r.Context(), meetingID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Invites sent: meeting_id=%d, sent=%d, failed=%d", route, meetingID, result.Sent, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// SendCategory POST /api/v1/proposed-meetings/{meetingId}/categories/{categoryId}/send
func (h *Handler) SendCategory(w http.ResponseWriter, r *http.Request) {
	const route = "POST /proposed-meetings/{id}/categories/{categoryId}/send"

	vars := mux.Vars(r)
	meetingID, err := strconv.ParseInt(vars["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid meeting ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}
	categoryID, err := strconv.ParseInt(vars["categoryId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid category ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.useCase.SendCategory(r.Context(), meetingID, categoryID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Invites sent: meeting_id=%d, category_id=%d, sent=%d, failed=%d",
		route, meetingID, categoryID, result.Sent, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, sendInvites.ErrMeetingNotFound):
		h.logger.Warn("%s - Meeting not found: %v", route, err)
		handlers.RespondNotFound(w, msgMeetingNotFound)

	case errors.Is(err, sendInvites.ErrInviteNotFound):
		h.logger.Warn("%s - Invite not found: %v", route, err)
		handlers.RespondNotFound(w, msgInviteNotFound)

	case errors.Is(err, sendInvites.ErrMeetingClosed):
		h.logger.Warn("%s - Meeting closed: %v", route, err)
		handlers.RespondConflict(w, msgMeetingClosed)

	case errors.Is(err, sendInvites.ErrInviteClosed):
		h.logger.Warn("%s - Invite closed: %v", route, err)
		handlers.RespondConflict(w, msgInviteClosed)

	case errors.Is(err, sendInvites.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed to send invites: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
