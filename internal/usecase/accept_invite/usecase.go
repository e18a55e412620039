package accept_invite

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	"github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
)

// UseCase use case принятия приглашения на предложенную встречу
type UseCase struct {
	meetingRepo MeetingRepository
	creator     AppointmentCreator
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(meetingRepo MeetingRepository, creator AppointmentCreator, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		meetingRepo: meetingRepo,
		creator:     creator,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute превращает приглашение в запись клиента
// Создание записи, принятие приглашения, пометка соседних приглашений и закрытие встречи
// выполняются в одной транзакции; запись создаётся с теми же проверками, что и обычное бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptInvite: invite=%d", req.InviteID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptInvite: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp = nil

		// Встреча блокируется раньше приглашения: так параллельные принятия соседних приглашений
		// выстраиваются в очередь на одной строке
		preview, err := uc.meetingRepo.GetInvite(txCtx, req.InviteID)
		if err != nil {
			return uc.inviteError(req.InviteID, err)
		}

		meeting, err := uc.meetingRepo.GetMeetingForUpdate(txCtx, preview.ProposedMeetingID)
		if err != nil {
			if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
				uc.logger.Warn("AcceptInvite: meeting id=%d not found", preview.ProposedMeetingID)
				return ErrMeetingNotFound
			}
			uc.logger.Error("AcceptInvite: failed to lock meeting id=%d: %v", preview.ProposedMeetingID, err)
			return fmt.Errorf("%w: failed to lock meeting: %w", ErrInternal, err)
		}

		invite, err := uc.meetingRepo.GetInviteForUpdate(txCtx, req.InviteID)
		if err != nil {
			return uc.inviteError(req.InviteID, err)
		}

		if !meeting.IsOpen() {
			uc.logger.Warn("AcceptInvite: meeting id=%d has status %s", meeting.ID, meeting.Status)
			return ErrMeetingClosed
		}
		if !invite.CanBeAccepted() {
			uc.logger.Warn("AcceptInvite: invite id=%d has status %s", invite.ID, invite.Status)
			return ErrInviteClosed
		}

		subjectID := req.SubjectID
		if subjectID == nil {
			subjectID = invite.SubjectID
		}
		if subjectID == nil {
			return fmt.Errorf("%w: invite id=%d has no subject, subjectID is required", ErrInvalidInput, invite.ID)
		}

		created, err := uc.creator.Execute(txCtx, appointmentRequest(meeting, invite.CustomerID, *subjectID, req.Notes))
		if err != nil {
			uc.logger.Warn("AcceptInvite: appointment for invite id=%d rejected: %v", invite.ID, err)
			return err
		}
		appointmentID := created.AppointmentIDs[0]

		if err := uc.meetingRepo.MarkAccepted(txCtx, invite.ID); err != nil {
			uc.logger.Error("AcceptInvite: failed to mark invite id=%d accepted: %v", invite.ID, err)
			return fmt.Errorf("%w: failed to mark invite accepted: %w", ErrInternal, err)
		}

		stale, err := uc.meetingRepo.MarkSiblingsStale(txCtx, meeting.ID, invite.ID)
		if err != nil {
			uc.logger.Error("AcceptInvite: failed to mark siblings of invite id=%d stale: %v", invite.ID, err)
			return fmt.Errorf("%w: failed to mark sibling invites stale: %w", ErrInternal, err)
		}

		if err := uc.meetingRepo.MarkConverted(txCtx, meeting.ID, appointmentID); err != nil {
			uc.logger.Error("AcceptInvite: failed to convert meeting id=%d: %v", meeting.ID, err)
			return fmt.Errorf("%w: failed to convert meeting: %w", ErrInternal, err)
		}

		resp = &Response{
			InviteID:      invite.ID,
			MeetingID:     meeting.ID,
			AppointmentID: appointmentID,
			StaleInvites:  stale,
			Appointment:   created.Appointments[0],
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptInvite: invite=%d converted to appointment=%d, stale invites=%d",
		resp.InviteID, resp.AppointmentID, resp.StaleInvites)

	return resp, nil
}

// appointmentRequest строит запрос на запись по параметрам встречи
func appointmentRequest(meeting *domain.ProposedMeeting, customerID, subjectID int64, notes *string) *create_appointment.Request {
	req := &create_appointment.Request{
		CustomerID:     customerID,
		SubjectIDs:     []int64{subjectID},
		StartAt:        meeting.StartAt,
		EndAt:          meeting.EndAt,
		Kind:           domain.KindBusiness,
		ManualOverride: meeting.ManualOverride,
		Status:         domain.AppointmentMatched,
		Notes:          notes,
	}

	// встреча без ресурса превращается в запись-событие без ресурса
	if meeting.ResourceID == nil {
		req.Kind = domain.KindEvent
		return req
	}
	req.ResourceIDs = []int64{*meeting.ResourceID}
	return req
}

func (uc *UseCase) inviteError(inviteID int64, err error) error {
	if errors.Is(err, meetingRepo.ErrInviteNotFound) {
		uc.logger.Warn("AcceptInvite: invite id=%d not found", inviteID)
		return ErrInviteNotFound
	}
	uc.logger.Error("AcceptInvite: failed to get invite id=%d: %v", inviteID, err)
	return fmt.Errorf("%w: failed to get invite: %w", ErrInternal, err)
}
