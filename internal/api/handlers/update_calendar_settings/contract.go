package update_calendar_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar/models"
)

type CalendarService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
