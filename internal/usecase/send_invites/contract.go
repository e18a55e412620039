package send_invites

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
)

// MeetingRepository интерфейс репозитория предложенных встреч и приглашений
type MeetingRepository interface {
	GetMeeting(ctx context.Context, id int64) (*domain.ProposedMeeting, error)
	GetMeetingForShare(ctx context.Context, id int64) (*domain.ProposedMeeting, error)
	GetInvite(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error)
	ListInvites(ctx context.Context, meetingID int64, filter meetingRepo.InvitesFilter) ([]*domain.ProposedMeetingInvite, error)
	ListFailedForRetry(ctx context.Context, maxAttempts, limit int) ([]*domain.ProposedMeetingInvite, error)
	MarkSent(ctx context.Context, id int64) (int, error)
	MarkFailed(ctx context.Context, id int64, reason string) error
}

// CustomerRepository интерфейс чтения клиентов
type CustomerRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
}

// Notifier интерфейс отправки приглашений
type Notifier interface {
	NotifyInvite(ctx context.Context, invite domain.InviteNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
