package send_invites

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
)

// UseCase use case отправки приглашений на предложенную встречу
// Пакеты отправляются последовательно; ошибка одного приглашения записывается в его результат
// и не прерывает пакет. Каждое приглашение отправляется в своей транзакции под разделяемой
// блокировкой встречи, поэтому принятие приглашения не пересекается с отправкой
type UseCase struct {
	meetingRepo  MeetingRepository
	customerRepo CustomerRepository
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(meetingRepo MeetingRepository, customerRepo CustomerRepository, notifier Notifier, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		meetingRepo:  meetingRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// SendOne отправляет (или повторно отправляет) одно приглашение
// Неудачная доставка возвращается в Results, а не ошибкой
func (uc *UseCase) SendOne(ctx context.Context, inviteID int64) (*Response, error) {
	uc.logger.Info("SendInvite: invite=%d", inviteID)

	if err := validateID("inviteID", inviteID); err != nil {
		return nil, err
	}

	invite, err := uc.meetingRepo.GetInvite(ctx, inviteID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrInviteNotFound) {
			uc.logger.Warn("SendInvite: invite id=%d not found", inviteID)
			return nil, ErrInviteNotFound
		}
		uc.logger.Error("SendInvite: failed to get invite id=%d: %v", inviteID, err)
		return nil, fmt.Errorf("%w: failed to get invite: %w", ErrInternal, err)
	}

	meeting, err := uc.openMeeting(ctx, invite.ProposedMeetingID)
	if err != nil {
		return nil, err
	}

	if !invite.CanBeSent() {
		uc.logger.Warn("SendInvite: invite id=%d has status %s", invite.ID, invite.Status)
		return nil, ErrInviteClosed
	}

	result, err := uc.deliver(ctx, invite)
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		return nil, ErrInviteClosed
	}
	return newResponse(meeting.ID, []domain.DeliveryResult{result}), nil
}

// SendAll отправляет все ещё открытые приглашения встречи
func (uc *UseCase) SendAll(ctx context.Context, meetingID int64) (*Response, error) {
	uc.logger.Info("SendAllInvites: meeting=%d", meetingID)

	if err := validateID("meetingID", meetingID); err != nil {
		return nil, err
	}

	return uc.sendBatch(ctx, meetingID, meetingRepo.InvitesFilter{Statuses: sendable})
}

// SendCategory отправляет открытые приглашения, добавленные из категории клиентов
func (uc *UseCase) SendCategory(ctx context.Context, meetingID, categoryID int64) (*Response, error) {
	uc.logger.Info("SendCategoryInvites: meeting=%d, category=%d", meetingID, categoryID)

	if err := validateID("meetingID", meetingID); err != nil {
		return nil, err
	}
	if err := validateID("categoryID", categoryID); err != nil {
		return nil, err
	}

	return uc.sendBatch(ctx, meetingID, meetingRepo.InvitesFilter{
		SourceCategoryID: &categoryID,
		Statuses:         sendable,
	})
}

// RetryFailed повторяет доставку приглашений, последняя отправка которых не удалась
// Используется периодической задачей
func (uc *UseCase) RetryFailed(ctx context.Context, maxAttempts, limit int) (*Response, error) {
	invites, err := uc.meetingRepo.ListFailedForRetry(ctx, maxAttempts, limit)
	if err != nil {
		uc.logger.Error("RetryInvites: failed to list failed invites: %v", err)
		return nil, fmt.Errorf("%w: failed to list failed invites: %w", ErrInternal, err)
	}

	results := make([]domain.DeliveryResult, 0, len(invites))
	for _, invite := range invites {
		if ctx.Err() != nil {
			uc.logger.Warn("RetryInvites: stopped after %d invites: %v", len(results), ctx.Err())
			break
		}

		result, err := uc.deliver(ctx, invite)
		if err != nil {
			uc.logger.Warn("RetryInvites: skip invite id=%d: %v", invite.ID, err)
			continue
		}
		results = append(results, result)
	}

	resp := newResponse(0, results)
	if len(results) > 0 {
		uc.logger.Info("RetryInvites: sent=%d, failed=%d, skipped=%d", resp.Sent, resp.Failed, resp.Skipped)
	}
	return resp, nil
}

func (uc *UseCase) sendBatch(ctx context.Context, meetingID int64, filter meetingRepo.InvitesFilter) (*Response, error) {
	if _, err := uc.openMeeting(ctx, meetingID); err != nil {
		return nil, err
	}

	invites, err := uc.meetingRepo.ListInvites(ctx, meetingID, filter)
	if err != nil {
		uc.logger.Error("SendInvites: failed to list invites of meeting=%d: %v", meetingID, err)
		return nil, fmt.Errorf("%w: failed to list invites: %w", ErrInternal, err)
	}

	results := make([]domain.DeliveryResult, 0, len(invites))
	for _, invite := range invites {
		if ctx.Err() != nil {
			uc.logger.Warn("SendInvites: meeting=%d stopped after %d of %d invites: %v",
				meetingID, len(results), len(invites), ctx.Err())
			break
		}

		result, err := uc.deliver(ctx, invite)
		if err != nil {
			// встреча превращена в запись во время пакета: остальные приглашения уже устарели
			uc.logger.Warn("SendInvites: meeting=%d stopped after %d of %d invites: %v",
				meetingID, len(results), len(invites), err)
			break
		}
		results = append(results, result)
	}

	resp := newResponse(meetingID, results)
	uc.logger.Info("SendInvites: meeting=%d, sent=%d, failed=%d, skipped=%d",
		meetingID, resp.Sent, resp.Failed, resp.Skipped)
	return resp, nil
}

// openMeeting загружает встречу и проверяет, что она ещё открыта
func (uc *UseCase) openMeeting(ctx context.Context, meetingID int64) (*domain.ProposedMeeting, error) {
	meeting, err := uc.meetingRepo.GetMeeting(ctx, meetingID)
	return uc.checkOpen(meetingID, meeting, err)
}

// lockOpenMeeting то же, что openMeeting, но держит разделяемую блокировку встречи до конца транзакции
func (uc *UseCase) lockOpenMeeting(ctx context.Context, meetingID int64) (*domain.ProposedMeeting, error) {
	meeting, err := uc.meetingRepo.GetMeetingForShare(ctx, meetingID)
	return uc.checkOpen(meetingID, meeting, err)
}

func (uc *UseCase) checkOpen(meetingID int64, meeting *domain.ProposedMeeting, err error) (*domain.ProposedMeeting, error) {
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			uc.logger.Warn("SendInvites: meeting id=%d not found", meetingID)
			return nil, ErrMeetingNotFound
		}
		uc.logger.Error("SendInvites: failed to get meeting id=%d: %v", meetingID, err)
		return nil, fmt.Errorf("%w: failed to get meeting: %w", ErrInternal, err)
	}

	if !meeting.IsOpen() {
		uc.logger.Warn("SendInvites: meeting id=%d has status %s", meetingID, meeting.Status)
		return nil, ErrMeetingClosed
	}

	return meeting, nil
}

// deliver отправляет одно приглашение и фиксирует результат в хранилище
// Встреча и приглашение перечитываются под блокировкой: принятое или устаревшее приглашение
// пропускается без отправки. Ошибка возвращается, только если встреча закрыта или не найдена
func (uc *UseCase) deliver(ctx context.Context, invite *domain.ProposedMeetingInvite) (domain.DeliveryResult, error) {
	result := domain.DeliveryResult{
		InviteID:          invite.ID,
		CustomerID:        invite.CustomerID,
		NotificationCount: invite.NotificationCount,
	}

	var meetingErr error
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		meeting, err := uc.lockOpenMeeting(txCtx, invite.ProposedMeetingID)
		if err != nil {
			if errors.Is(err, ErrMeetingClosed) || errors.Is(err, ErrMeetingNotFound) {
				meetingErr = err
			}
			return err
		}

		current, err := uc.meetingRepo.GetInvite(txCtx, invite.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload invite id=%d: %w", ErrInternal, invite.ID, err)
		}
		if !current.CanBeSent() {
			uc.logger.Warn("SendInvites: invite id=%d has status %s, skipped", invite.ID, current.Status)
			result.Skipped = true
			result.Err = ErrInviteClosed
			return nil
		}
		result.NotificationCount = current.NotificationCount

		customer, err := uc.customerRepo.GetCustomer(txCtx, current.CustomerID)
		if err != nil {
			result.Err = uc.fail(txCtx, current.ID, fmt.Errorf("customer id=%d: %w", current.CustomerID, err))
			return nil
		}

		address, ok := customer.ContactAddress()
		if !ok {
			result.Err = uc.fail(txCtx, current.ID, fmt.Errorf("customer id=%d: %w", current.CustomerID, ErrNoContactAddress))
			return nil
		}

		err = uc.notifier.NotifyInvite(txCtx, domain.InviteNotification{
			InviteID:     current.ID,
			CustomerName: customer.Name,
			Address:      address,
			Title:        meeting.Title,
			StartAt:      meeting.StartAt,
			EndAt:        meeting.EndAt,
		})
		if err != nil {
			result.Err = uc.fail(txCtx, current.ID, err)
			return nil
		}

		count, err := uc.meetingRepo.MarkSent(txCtx, current.ID)
		if errors.Is(err, meetingRepo.ErrInviteNotSendable) {
			uc.logger.Warn("SendInvites: invite id=%d closed during dispatch, not marked as sent", current.ID)
			result.Skipped = true
			result.Err = ErrInviteClosed
			return nil
		}
		if err != nil {
			// сообщение ушло, но счётчик не сохранён
			return fmt.Errorf("%w: invite id=%d delivered but not marked as sent: %w", ErrInternal, current.ID, err)
		}

		result.Delivered = true
		result.NotificationCount = count
		return nil
	})

	if meetingErr != nil {
		return result, meetingErr
	}
	if err != nil {
		uc.logger.Error("SendInvites: invite id=%d: %v", invite.ID, err)
		result.Delivered = false
		result.Skipped = false
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		result.Err = err
	}
	return result, nil
}

// fail записывает ошибку доставки в приглашение и возвращает её для результата
func (uc *UseCase) fail(ctx context.Context, inviteID int64, cause error) error {
	uc.logger.Warn("SendInvites: invite id=%d not delivered: %v", inviteID, cause)

	if err := uc.meetingRepo.MarkFailed(ctx, inviteID, cause.Error()); err != nil {
		uc.logger.Error("SendInvites: failed to record delivery error for invite id=%d: %v", inviteID, err)
	}

	return fmt.Errorf("%w: invite id=%d: %w", ErrDeliveryFailed, inviteID, cause)
}
