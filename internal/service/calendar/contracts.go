package calendar

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetOrCreate(ctx context.Context) (*domain.CalendarSettings, error)
	Update(ctx context.Context, openDaysAhead *int, displayStart, displayEnd *string) (*domain.CalendarSettings, error)
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
