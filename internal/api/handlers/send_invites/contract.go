package send_invites

import (
	"context"

	sendInvites "github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

type SendInvitesUseCase interface {
	SendOne(ctx context.Context, inviteID int64) (*sendInvites.Response, error)
	SendAll(ctx context.Context, meetingID int64) (*sendInvites.Response, error)
	SendCategory(ctx context.Context, meetingID, categoryID int64) (*sendInvites.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
