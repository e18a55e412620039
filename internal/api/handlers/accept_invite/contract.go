package accept_invite

import (
	"context"

	acceptInvite "github.com/m04kA/SMC-SalonScheduling/internal/usecase/accept_invite"
)

type AcceptInviteUseCase interface {
	Execute(ctx context.Context, req *acceptInvite.Request) (*acceptInvite.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
