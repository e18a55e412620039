package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type recordingDispatcher struct {
	to, body    string
	hadDeadline bool
	err         error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, to, body string) error {
	_, d.hadDeadline = ctx.Deadline()
	d.to = to
	d.body = body
	return d.err
}

type countingMetrics struct {
	delivered, failed int
}

func (m *countingMetrics) ObserveInviteDelivery(delivered bool) {
	if delivered {
		m.delivered++
		return
	}
	m.failed++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func invite() domain.InviteNotification {
	return domain.InviteNotification{
		InviteID:     5,
		CustomerName: "Anna",
		Address:      "+15550001111",
		Title:        "Puppy social",
		StartAt:      time.Date(2025, 1, 2, 7, 30, 0, 0, time.UTC),
		EndAt:        time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC),
	}
}

func TestRenderer_UsesSalonTimezone(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	r := NewRenderer("Hi {name}, {title} on {date} at {time}", loc)

	assert.Equal(t, "Hi Anna, Puppy social on 2025-01-02 at 10:30", r.Render(invite()))
}

func TestNotifyInvite_Delivered(t *testing.T) {
	d := &recordingDispatcher{}
	m := &countingMetrics{}
	n := New(d, NewRenderer("{title}", time.UTC), m, time.Second, nopLogger{})

	require.NoError(t, n.NotifyInvite(context.Background(), invite()))

	assert.Equal(t, "+15550001111", d.to)
	assert.Equal(t, "Puppy social", d.body)
	assert.True(t, d.hadDeadline)
	assert.Equal(t, 1, m.delivered)
}

func TestNotifyInvite_DispatcherFailure(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("provider down")}
	m := &countingMetrics{}
	n := New(d, NewRenderer("{title}", time.UTC), m, 0, nopLogger{})

	err := n.NotifyInvite(context.Background(), invite())
	assert.ErrorIs(t, err, ErrSend)
	assert.False(t, d.hadDeadline)
	assert.Equal(t, 1, m.failed)
}

func TestNotifyInvite_NoAddress(t *testing.T) {
	d := &recordingDispatcher{}
	m := &countingMetrics{}
	n := New(d, NewRenderer("{title}", time.UTC), m, 0, nopLogger{})

	inv := invite()
	inv.Address = ""

	err := n.NotifyInvite(context.Background(), inv)
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Empty(t, d.to)
	assert.Equal(t, 1, m.failed)
}

func TestLogDispatcher_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLogDispatcher(nopLogger{}).Dispatch(ctx, "+1", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}
