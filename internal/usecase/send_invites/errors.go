package send_invites

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("send_invites: invalid input data: %w", domain.ErrValidation)

	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("send_invites: proposed meeting not found")

	// ErrInviteNotFound возвращается, когда приглашение не найдено
	ErrInviteNotFound = errors.New("send_invites: invite not found")

	// ErrMeetingClosed возвращается, когда встреча уже превращена в запись
	ErrMeetingClosed = errors.New("send_invites: proposed meeting is no longer open")

	// ErrInviteClosed возвращается при отправке принятого или устаревшего приглашения
	ErrInviteClosed = errors.New("send_invites: invite is already accepted or stale")

	// ErrNoContactAddress у клиента нет ни телефона, ни email
	ErrNoContactAddress = errors.New("send_invites: customer has no contact address")

	// ErrDeliveryFailed ошибка доставки одного приглашения, в пакетной отправке не прерывает пакет
	ErrDeliveryFailed = fmt.Errorf("send_invites: delivery failed: %w", domain.ErrDelivery)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("send_invites: internal error")
)
