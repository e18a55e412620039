package resolve_duration

import (
	"context"

	resolveDuration "github.com/m04kA/SMC-SalonScheduling/internal/usecase/resolve_duration"
)

type ResolveDurationUseCase interface {
	Execute(ctx context.Context, req *resolveDuration.Request) (*resolveDuration.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
