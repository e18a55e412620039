package list_blocked_windows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/service/resources/models"
)

type ResourceService interface {
	ListBlockedWindows(ctx context.Context, resourceID int64, from, to time.Time) (*models.BlockedWindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
