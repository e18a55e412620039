package add_category_invites

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

type MeetingService interface {
	AddCategoryInvites(ctx context.Context, meetingID int64, req *models.AddCategoryInvitesRequest) (*models.AddInvitesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
