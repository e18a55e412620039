package get_calendar_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type CalendarService interface {
	Get(ctx context.Context) (*domain.CalendarSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
