package create_meeting

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

type MeetingService interface {
	Create(ctx context.Context, req *models.CreateMeetingRequest) (*models.MeetingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
