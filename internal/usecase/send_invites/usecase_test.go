package send_invites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

type fakeMeetings struct {
	meetings  map[int64]*domain.ProposedMeeting
	invites   []*domain.ProposedMeetingInvite
	afterList func()
	locks     int
}

func (f *fakeMeetings) GetMeeting(_ context.Context, id int64) (*domain.ProposedMeeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	return m, nil
}

func (f *fakeMeetings) GetMeetingForShare(ctx context.Context, id int64) (*domain.ProposedMeeting, error) {
	f.locks++
	return f.GetMeeting(ctx, id)
}

func (f *fakeMeetings) GetInvite(_ context.Context, id int64) (*domain.ProposedMeetingInvite, error) {
	for _, i := range f.invites {
		if i.ID == id {
			copied := *i
			return &copied, nil
		}
	}
	return nil, meetingRepo.ErrInviteNotFound
}

func (f *fakeMeetings) ListInvites(_ context.Context, meetingID int64, filter meetingRepo.InvitesFilter) ([]*domain.ProposedMeetingInvite, error) {
	out := make([]*domain.ProposedMeetingInvite, 0)
	for _, i := range f.invites {
		if i.ProposedMeetingID != meetingID {
			continue
		}
		if filter.SourceCategoryID != nil && (i.SourceCategoryID == nil || *i.SourceCategoryID != *filter.SourceCategoryID) {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, i.Status) {
			continue
		}
		copied := *i
		out = append(out, &copied)
	}
	if f.afterList != nil {
		f.afterList()
	}
	return out, nil
}

func (f *fakeMeetings) ListFailedForRetry(_ context.Context, maxAttempts, limit int) ([]*domain.ProposedMeetingInvite, error) {
	out := make([]*domain.ProposedMeetingInvite, 0)
	for _, i := range f.invites {
		if i.LastError == nil || i.DeliveryAttempts >= maxAttempts || !i.CanBeSent() {
			continue
		}
		if len(out) == limit {
			break
		}
		copied := *i
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMeetings) MarkSent(_ context.Context, id int64) (int, error) {
	i := f.find(id)
	if !f.sendable(i) {
		return 0, meetingRepo.ErrInviteNotSendable
	}
	i.Status = domain.InviteSent
	i.NotificationCount++
	i.DeliveryAttempts = 0
	i.LastError = nil
	return i.NotificationCount, nil
}

func (f *fakeMeetings) MarkFailed(_ context.Context, id int64, reason string) error {
	i := f.find(id)
	if !f.sendable(i) {
		return meetingRepo.ErrInviteNotSendable
	}
	i.DeliveryAttempts++
	i.LastError = &reason
	return nil
}

func (f *fakeMeetings) find(id int64) *domain.ProposedMeetingInvite {
	for _, i := range f.invites {
		if i.ID == id {
			return i
		}
	}
	return nil
}

// sendable повторяет условие UPDATE в репозитории
func (f *fakeMeetings) sendable(i *domain.ProposedMeetingInvite) bool {
	return i.CanBeSent() && f.meetings[i.ProposedMeetingID].IsOpen()
}

func hasStatus(statuses []domain.InviteStatus, s domain.InviteStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

type fakeCustomers struct{}

func (fakeCustomers) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	switch {
	case id == 99:
		return nil, subjectRepo.ErrCustomerNotFound
	case id == 50:
		return &domain.Customer{ID: id, Name: "No phone"}, nil
	default:
		return &domain.Customer{ID: id, Name: "Customer", Phone: ptr.Ptr("+1555000")}, nil
	}
}

type fakeNotifier struct {
	failFor  map[int64]bool
	sent     []int64
	attempts int
	onSend   func(inviteID int64)
}

func (n *fakeNotifier) NotifyInvite(_ context.Context, invite domain.InviteNotification) error {
	n.attempts++
	if invite.Address == "" {
		return errors.New("no address")
	}
	if n.failFor[invite.InviteID] {
		return errors.New("provider rejected the message")
	}
	n.sent = append(n.sent, invite.InviteID)
	if n.onSend != nil {
		n.onSend(invite.InviteID)
	}
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newMeetings(statuses ...domain.InviteStatus) *fakeMeetings {
	f := &fakeMeetings{meetings: map[int64]*domain.ProposedMeeting{
		1: {ID: 1, Title: "Puppy social", Status: domain.MeetingOpen, StartAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)},
		2: {ID: 2, Title: "Converted", Status: domain.MeetingConverted},
	}}
	for n, status := range statuses {
		id := int64(n + 1)
		f.invites = append(f.invites, &domain.ProposedMeetingInvite{
			ID:                id,
			ProposedMeetingID: 1,
			CustomerID:        100 + id,
			Status:            status,
			Source:            domain.SourceIndividual,
		})
	}
	return f
}

func TestSendAll_ContinuesPastFailures(t *testing.T) {
	meetings := newMeetings(
		domain.InviteUninvited, domain.InviteUninvited, domain.InviteUninvited,
		domain.InviteUninvited, domain.InviteUninvited,
	)
	notifier := &fakeNotifier{failFor: map[int64]bool{3: true}}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 5)
	assert.Equal(t, []int64{1, 2, 4, 5}, notifier.sent)

	failed := resp.Results[2]
	assert.Equal(t, int64(3), failed.InviteID)
	assert.False(t, failed.Delivered)
	assert.ErrorIs(t, failed.Err, domain.ErrDelivery)
	assert.ErrorIs(t, failed.Err, ErrDeliveryFailed)

	stored := meetings.find(3)
	assert.Equal(t, domain.InviteUninvited, stored.Status)
	assert.Equal(t, 0, stored.NotificationCount)
	assert.Equal(t, 1, stored.DeliveryAttempts)
	require.NotNil(t, stored.LastError)

	for _, id := range []int64{1, 2, 4, 5} {
		assert.Equal(t, domain.InviteSent, meetings.find(id).Status)
		assert.Equal(t, 1, meetings.find(id).NotificationCount)
	}
}

func TestSendAll_SkipsClosedInvites(t *testing.T) {
	meetings := newMeetings(domain.InviteSent, domain.InviteStale, domain.InviteAccepted)
	meetings.invites[0].NotificationCount = 1
	uc := NewUseCase(meetings, fakeCustomers{}, &fakeNotifier{}, passthroughTx{}, nopLogger{})

	resp, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].InviteID)
	assert.Equal(t, 2, resp.Results[0].NotificationCount)
}

func TestSendOne_ResendIncrementsByOne(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited)
	uc := NewUseCase(meetings, fakeCustomers{}, &fakeNotifier{}, passthroughTx{}, nopLogger{})

	for want := 1; want <= 3; want++ {
		resp, err := uc.SendOne(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Sent)
		assert.Equal(t, want, resp.Results[0].NotificationCount)
	}

	assert.Len(t, meetings.invites, 1)
	assert.Equal(t, domain.InviteSent, meetings.find(1).Status)
}

func TestSendOne_FailureReportedInResult(t *testing.T) {
	meetings := newMeetings(domain.InviteSent)
	meetings.invites[0].NotificationCount = 2
	meetings.invites[0].CustomerID = 50

	notifier := &fakeNotifier{}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendOne(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, resp.Results[0].NotificationCount)
	assert.ErrorIs(t, resp.Results[0].Err, domain.ErrDelivery)
	assert.ErrorIs(t, resp.Results[0].Err, ErrNoContactAddress)
	assert.Equal(t, domain.InviteSent, meetings.find(1).Status)

	// клиент без телефона и email не доходит до провайдера
	assert.Zero(t, notifier.attempts)
	assert.Equal(t, 1, meetings.find(1).DeliveryAttempts)
}

func TestSendOne_Rejections(t *testing.T) {
	meetings := newMeetings(domain.InviteAccepted, domain.InviteStale, domain.InviteSent)
	meetings.invites[2].ProposedMeetingID = 2
	uc := NewUseCase(meetings, fakeCustomers{}, &fakeNotifier{}, passthroughTx{}, nopLogger{})

	tests := []struct {
		name     string
		inviteID int64
		want     error
	}{
		{"accepted", 1, ErrInviteClosed},
		{"stale", 2, ErrInviteClosed},
		{"meeting converted", 3, ErrMeetingClosed},
		{"unknown invite", 42, ErrInviteNotFound},
		{"zero id", 0, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SendOne(context.Background(), tt.inviteID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSendCategory_OnlyCategoryInvites(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited, domain.InviteUninvited)
	meetings.invites[1].Source = domain.SourceCategory
	meetings.invites[1].SourceCategoryID = ptr.Ptr(int64(7))
	notifier := &fakeNotifier{}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendCategory(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, []int64{2}, notifier.sent)

	_, err = uc.SendCategory(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrMeetingClosed)
}

func TestRetryFailed(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited, domain.InviteSent)
	notifier := &fakeNotifier{failFor: map[int64]bool{1: true, 2: true}}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	_, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	// провайдер снова доступен для второго приглашения
	notifier.failFor = map[int64]bool{1: true}

	resp, err := uc.RetryFailed(context.Background(), 3, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, meetings.find(1).DeliveryAttempts)
	assert.Equal(t, 0, meetings.find(2).DeliveryAttempts)
	assert.Nil(t, meetings.find(2).LastError)

	// после исчерпания попыток приглашение больше не повторяется
	_, err = uc.RetryFailed(context.Background(), 3, 10)
	require.NoError(t, err)
	resp, err = uc.RetryFailed(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSendAll_InviteClosedAfterListingIsNotDispatched(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited, domain.InviteUninvited)
	meetings.afterList = func() {
		meetings.find(2).Status = domain.InviteStale
	}
	notifier := &fakeNotifier{}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 1, resp.Skipped)
	assert.Zero(t, resp.Failed)
	assert.Equal(t, []int64{1, 3}, notifier.sent)
	assert.Equal(t, 3, meetings.locks)

	skipped := resp.Results[1]
	assert.True(t, skipped.Skipped)
	assert.ErrorIs(t, skipped.Err, ErrInviteClosed)

	stored := meetings.find(2)
	assert.Equal(t, domain.InviteStale, stored.Status)
	assert.Zero(t, stored.NotificationCount)
}

func TestSendAll_InviteClosedBeforeMarkSentKeepsStatus(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited)
	notifier := &fakeNotifier{onSend: func(inviteID int64) {
		if inviteID == 2 {
			meetings.find(2).Status = domain.InviteStale
		}
	}}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, 1, resp.Skipped)

	stored := meetings.find(2)
	assert.Equal(t, domain.InviteStale, stored.Status)
	assert.Zero(t, stored.NotificationCount)
}

func TestSendAll_StopsWhenMeetingConvertedMidBatch(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited, domain.InviteUninvited)
	notifier := &fakeNotifier{onSend: func(inviteID int64) {
		if inviteID != 1 {
			return
		}
		// третий клиент принял приглашение, пока шла рассылка
		meetings.meetings[1].Status = domain.MeetingConverted
		meetings.find(1).Status = domain.InviteStale
		meetings.find(2).Status = domain.InviteStale
		meetings.find(3).Status = domain.InviteAccepted
	}}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.SendAll(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, notifier.sent)
	require.Len(t, resp.Results, 1)
	// отметка о доставке не пишется в уже устаревшее приглашение
	assert.True(t, resp.Results[0].Skipped)
	assert.Equal(t, domain.InviteAccepted, meetings.find(3).Status)
	assert.Zero(t, meetings.find(3).NotificationCount)
}

func TestRetryFailed_SkipsConvertedMeetings(t *testing.T) {
	meetings := newMeetings(domain.InviteUninvited, domain.InviteUninvited)
	meetings.invites[1].ProposedMeetingID = 2
	for _, i := range meetings.invites {
		i.LastError = ptr.Ptr("timeout")
		i.DeliveryAttempts = 1
	}
	notifier := &fakeNotifier{}
	uc := NewUseCase(meetings, fakeCustomers{}, notifier, passthroughTx{}, nopLogger{})

	resp, err := uc.RetryFailed(context.Background(), 3, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, []int64{1}, notifier.sent)
	assert.Equal(t, 1, meetings.find(2).DeliveryAttempts)
}
