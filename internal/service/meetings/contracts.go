package meetings

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
)

// MeetingRepository интерфейс репозитория предложенных встреч
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *domain.ProposedMeeting) (*domain.ProposedMeeting, error)
	GetMeeting(ctx context.Context, id int64) (*domain.ProposedMeeting, error)
	GetMeetingForUpdate(ctx context.Context, id int64) (*domain.ProposedMeeting, error)
	DeleteMeeting(ctx context.Context, id int64) error
	CreateInvites(ctx context.Context, invites []*domain.ProposedMeetingInvite) ([]*domain.ProposedMeetingInvite, error)
	ListInvites(ctx context.Context, meetingID int64, filter meetingRepo.InvitesFilter) ([]*domain.ProposedMeetingInvite, error)
	DeleteInvitesByMeeting(ctx context.Context, meetingID int64) (int64, error)
}

// CustomerRepository интерфейс репозитория клиентов и категорий
type CustomerRepository interface {
	GetCustomers(ctx context.Context, ids []int64) ([]*domain.Customer, error)
	GetCategory(ctx context.Context, id int64) (*domain.CustomerCategory, error)
	ListCategoryMembers(ctx context.Context, categoryID int64) ([]*domain.Customer, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
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
