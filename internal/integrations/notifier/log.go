package notifier

import "context"

// LogDispatcher пишет сообщения в лог вместо отправки (локальная разработка)
type LogDispatcher struct {
	log Logger
}

// NewLogDispatcher создает диспетчер, пишущий в лог
func NewLogDispatcher(log Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.log.Info("LogDispatcher: to=%s, body=%q", to, body)
	return nil
}
