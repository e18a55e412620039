package notifier

import "context"

// Dispatcher канал доставки готового текста сообщения
type Dispatcher interface {
	Dispatch(ctx context.Context, to, body string) error
}

// MetricsRecorder учёт результатов доставки
type MetricsRecorder interface {
	ObserveInviteDelivery(delivered bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
