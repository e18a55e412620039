package accept_invite

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
)

// MeetingRepository интерфейс репозитория предложенных встреч
type MeetingRepository interface {
	GetInvite(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error)
	GetInviteForUpdate(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error)
	GetMeetingForUpdate(ctx context.Context, id int64) (*domain.ProposedMeeting, error)
	MarkAccepted(ctx context.Context, id int64) error
	MarkSiblingsStale(ctx context.Context, meetingID, acceptedInviteID int64) (int64, error)
	MarkConverted(ctx context.Context, id, appointmentID int64) error
}

// AppointmentCreator создание записи с проверками пересечений и длительности
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
