package resolve_duration

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// DurationRuleRepository интерфейс репозитория правил длительности
type DurationRuleRepository interface {
	Get(ctx context.Context, subjectTypeID, resourceID int64) (*domain.DurationRule, error)
}

// SubjectRepository интерфейс репозитория типов животных
type SubjectRepository interface {
	GetSubjectType(ctx context.Context, id int64) (*domain.SubjectType, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
