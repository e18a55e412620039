// Package inviteretry периодически повторяет отправку приглашений,
// последняя доставка которых завершилась ошибкой
package inviteretry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Config параметры задачи
type Config struct {
	Schedule    string        // cron выражение, например "*/15 * * * *"
	MaxAttempts int           // приглашения с таким числом неудачных попыток больше не повторяются
	BatchSize   int           // максимум приглашений за один запуск
	RunTimeout  time.Duration // 0 = без ограничения
}

// Job задача повторной отправки
type Job struct {
	cron    *cron.Cron
	retrier Retrier
	cfg     Config
	logger  Logger
}

// New создает задачу; расписание интерпретируется в часовом поясе салона
// Пересекающиеся запуски пропускаются
func New(retrier Retrier, cfg Config, loc *time.Location, logger Logger) (*Job, error) {
	if loc == nil {
		loc = time.UTC
	}

	j := &Job{
		retrier: retrier,
		cfg:     cfg,
		logger:  logger,
	}

	cronLogger := cronLogAdapter{logger: logger}
	j.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	if _, err := j.cron.AddFunc(cfg.Schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, cfg.Schedule, err)
	}

	return j, nil
}

// Start запускает планировщик в фоне
func (j *Job) Start() {
	j.logger.Info("InviteRetry: started, schedule=%q, maxAttempts=%d, batch=%d",
		j.cfg.Schedule, j.cfg.MaxAttempts, j.cfg.BatchSize)
	j.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего запуска, но не дольше ctx
func (j *Job) Stop(ctx context.Context) error {
	done := j.cron.Stop().Done()
	select {
	case <-done:
		j.logger.Info("InviteRetry: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce выполняет один проход повторной отправки
func (j *Job) RunOnce(ctx context.Context) {
	if j.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.cfg.RunTimeout)
		defer cancel()
	}

	resp, err := j.retrier.RetryFailed(ctx, j.cfg.MaxAttempts, j.cfg.BatchSize)
	if err != nil {
		j.logger.Error("InviteRetry: run failed: %v", err)
		return
	}

	if len(resp.Results) == 0 {
		return
	}
	if resp.Failed > 0 {
		j.logger.Warn("InviteRetry: retried=%d, sent=%d, failed=%d", len(resp.Results), resp.Sent, resp.Failed)
		return
	}
	j.logger.Info("InviteRetry: retried=%d, sent=%d", len(resp.Results), resp.Sent)
}

// cronLogAdapter передаёт сообщения планировщика в логгер сервиса
type cronLogAdapter struct {
	logger Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info("InviteRetry: cron %s %v", msg, keysAndValues)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error("InviteRetry: cron %s: %v %v", msg, err, keysAndValues)
}
