package accept_invite

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("accept_invite: invalid input data: %w", domain.ErrValidation)

	// ErrInviteNotFound возвращается, когда приглашение не найдено
	ErrInviteNotFound = errors.New("accept_invite: invite not found")

	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("accept_invite: proposed meeting not found")

	// ErrMeetingClosed возвращается, когда встреча уже превращена в запись
	ErrMeetingClosed = errors.New("accept_invite: proposed meeting is no longer open")

	// ErrInviteClosed возвращается, когда приглашение уже принято или устарело
	ErrInviteClosed = errors.New("accept_invite: invite is already accepted or stale")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("accept_invite: internal error")
)
