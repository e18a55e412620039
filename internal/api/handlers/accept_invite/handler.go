package accept_invite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	acceptInvite "github.com/m04kA/SMC-SalonScheduling/internal/usecase/accept_invite"
	createAppointment "github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
)

const (
	msgInvalidInviteID      = "некорректный ID приглашения"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInviteNotFound       = "приглашение не найдено"
	msgMeetingNotFound      = "встреча не найдена"
	msgMeetingClosed        = "встреча уже состоялась"
	msgInviteClosed         = "приглашение уже принято или устарело"
	msgOverlap              = "время встречи пересекается с существующей записью"
	msgUnsupported          = "ресурс не обслуживает эту породу"
	msgSubjectNotFound      = "животное не найдено у этого клиента"
	msgConfigurationMissing = "служебные данные для записи недоступны"
	msgInvalidData          = "некорректные данные приглашения"
)

type Handler struct {
	useCase AcceptInviteUseCase
	logger  Logger
}

func NewHandler(useCase AcceptInviteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/invites/{inviteId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	inviteID, err := strconv.ParseInt(mux.Vars(r)["inviteId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /invites/{id}/accept - Invalid invite ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInviteID)
		return
	}

	var req AcceptInviteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /invites/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(inviteID))
	if err != nil {
		switch {
		case errors.Is(err, acceptInvite.ErrInviteNotFound):
			h.logger.Warn("POST /invites/{id}/accept - Invite not found: invite_id=%d", inviteID)
			handlers.RespondNotFound(w, msgInviteNotFound)

		case errors.Is(err, acceptInvite.ErrMeetingNotFound):
			h.logger.Warn("POST /invites/{id}/accept - Meeting not found: invite_id=%d", inviteID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, acceptInvite.ErrMeetingClosed):
			h.logger.Warn("POST /invites/{id}/accept - Meeting closed: invite_id=%d", inviteID)
			handlers.RespondConflict(w, msgMeetingClosed)

		case errors.Is(err, acceptInvite.ErrInviteClosed):
			h.logger.Warn("POST /invites/{id}/accept - Invite closed: invite_id=%d", inviteID)
			handlers.RespondConflict(w, msgInviteClosed)

		case errors.Is(err, domain.ErrOverlapConflict):
			h.logger.Warn("POST /invites/{id}/accept - Overlap: invite_id=%d", inviteID)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, domain.ErrUnsupportedCombination):
			h.logger.Warn("POST /invites/{id}/accept - Unsupported combination: invite_id=%d", inviteID)
			handlers.RespondUnsupported(w, msgUnsupported)

		case errors.Is(err, createAppointment.ErrSubjectNotFound):
			h.logger.Warn("POST /invites/{id}/accept - Subject not found: invite_id=%d, error=%v", inviteID, err)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /invites/{id}/accept - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, domain.ErrConfigurationUnavailable):
			h.logger.Error("POST /invites/{id}/accept - Configuration unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("POST /invites/{id}/accept - Failed to accept invite: invite_id=%d, error=%v", inviteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invites/{id}/accept - Invite accepted: invite_id=%d, appointment_id=%d, stale=%d",
		inviteID, result.AppointmentID, result.StaleInvites)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
