package resources

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context, filter resourceRepo.Filter) ([]*domain.Resource, error)
	ListBlockedWindows(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]*domain.BlockedWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
