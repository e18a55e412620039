package inviteretry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

type fakeRetrier struct {
	mu          sync.Mutex
	calls       int
	maxAttempts int
	limit       int
	hasDeadline bool
	err         error
}

func (f *fakeRetrier) RetryFailed(ctx context.Context, maxAttempts, limit int) (*send_invites.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.maxAttempts = maxAttempts
	f.limit = limit
	_, f.hasDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &send_invites.Response{
		Results: []domain.DeliveryResult{{InviteID: 1, Delivered: true}, {InviteID: 2}},
		Sent:    1,
		Failed:  1,
	}, nil
}

type recordingLogger struct {
	mu     sync.Mutex
	errors int
	warns  int
}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Warn(string, ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns++
}

func (l *recordingLogger) Error(string, ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors++
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeRetrier{}, Config{Schedule: "every now and then"}, time.UTC, &recordingLogger{})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRunOnce_PassesLimits(t *testing.T) {
	retrier := &fakeRetrier{}
	log := &recordingLogger{}
	job, err := New(retrier, Config{Schedule: "*/15 * * * *", MaxAttempts: 3, BatchSize: 50, RunTimeout: time.Minute}, nil, log)
	require.NoError(t, err)

	job.RunOnce(context.Background())

	assert.Equal(t, 1, retrier.calls)
	assert.Equal(t, 3, retrier.maxAttempts)
	assert.Equal(t, 50, retrier.limit)
	assert.True(t, retrier.hasDeadline)
	assert.Equal(t, 1, log.warns)
}

func TestRunOnce_LogsError(t *testing.T) {
	retrier := &fakeRetrier{err: errors.New("db down")}
	log := &recordingLogger{}
	job, err := New(retrier, Config{Schedule: "@every 1h", MaxAttempts: 3, BatchSize: 10}, time.UTC, log)
	require.NoError(t, err)

	job.RunOnce(context.Background())

	assert.False(t, retrier.hasDeadline)
	assert.Equal(t, 1, log.errors)
}

func TestStartStop(t *testing.T) {
	job, err := New(&fakeRetrier{}, Config{Schedule: "@every 1h"}, time.UTC, &recordingLogger{})
	require.NoError(t, err)

	job.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, job.Stop(ctx))
}
