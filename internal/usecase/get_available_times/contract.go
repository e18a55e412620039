package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
)

// SubjectRepository интерфейс репозитория животных
type SubjectRepository interface {
	GetSubject(ctx context.Context, id int64) (*domain.Subject, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	List(ctx context.Context, filter resourceRepo.Filter) ([]*domain.Resource, error)
	ListBlockedWindows(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]*domain.BlockedWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CalendarSettingsProvider источник актуальных настроек календаря
type CalendarSettingsProvider interface {
	Get(ctx context.Context) (*domain.CalendarSettings, error)
}

// DurationResolver интерфейс определения длительности услуги
type DurationResolver interface {
	Resolve(ctx context.Context, subjectTypeID, resourceID int64) (domain.DurationResult, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
