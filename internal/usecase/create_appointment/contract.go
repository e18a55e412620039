package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	// LockForUpdate блокирует строки ресурсов в порядке ID до конца транзакции
	LockForUpdate(ctx context.Context, ids []int64) ([]*domain.Resource, error)
}

// SubjectRepository интерфейс репозитория клиентов и животных
type SubjectRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetSubjects(ctx context.Context, ids []int64) ([]*domain.Subject, error)
	EnsureInternal(ctx context.Context, customerName, subjectName string) (*domain.Customer, *domain.Subject, error)
}

// DurationResolver интерфейс определения длительности услуги
type DurationResolver interface {
	Resolve(ctx context.Context, subjectTypeID, resourceID int64) (domain.DurationResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные метрики бронирования
type MetricsRecorder interface {
	ObserveAppointmentsCreated(kind string, count int)
	ObserveBookingConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
