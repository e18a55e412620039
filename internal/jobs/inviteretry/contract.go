package inviteretry

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

// Retrier повторная отправка приглашений, доставка которых не удалась
type Retrier interface {
	RetryFailed(ctx context.Context, maxAttempts, limit int) (*send_invites.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
