package accept_invite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	"github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

type fakeMeetings struct {
	meeting *domain.ProposedMeeting
	invites map[int64]*domain.ProposedMeetingInvite
	locked  []string
}

func (f *fakeMeetings) GetInvite(_ context.Context, id int64) (*domain.ProposedMeetingInvite, error) {
	i, ok := f.invites[id]
	if !ok {
		return nil, meetingRepo.ErrInviteNotFound
	}
	return i, nil
}

func (f *fakeMeetings) GetInviteForUpdate(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error) {
	f.locked = append(f.locked, "invite")
	return f.GetInvite(ctx, id)
}

func (f *fakeMeetings) GetMeetingForUpdate(_ context.Context, id int64) (*domain.ProposedMeeting, error) {
	f.locked = append(f.locked, "meeting")
	if f.meeting.ID != id {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	return f.meeting, nil
}

func (f *fakeMeetings) MarkAccepted(_ context.Context, id int64) error {
	f.invites[id].Status = domain.InviteAccepted
	return nil
}

func (f *fakeMeetings) MarkSiblingsStale(_ context.Context, meetingID, acceptedInviteID int64) (int64, error) {
	var n int64
	for _, i := range f.invites {
		if i.ProposedMeetingID == meetingID && i.ID != acceptedInviteID && i.CanBeAccepted() {
			i.Status = domain.InviteStale
			n++
		}
	}
	return n, nil
}

func (f *fakeMeetings) MarkConverted(_ context.Context, id, appointmentID int64) error {
	f.meeting.Status = domain.MeetingConverted
	f.meeting.AppointmentID = &appointmentID
	return nil
}

type fakeCreator struct {
	got *create_appointment.Request
	err error
}

func (c *fakeCreator) Execute(_ context.Context, req *create_appointment.Request) (*create_appointment.Response, error) {
	c.got = req
	if c.err != nil {
		return nil, c.err
	}
	appointment := &domain.Appointment{ID: 900, ResourceID: ptr.Ptr(int64(10)), StartAt: req.StartAt, EndAt: req.EndAt, Status: req.Status}
	return &create_appointment.Response{
		AppointmentIDs: []int64{900},
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Appointments:   []*domain.Appointment{appointment},
	}, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newMeetings() *fakeMeetings {
	return &fakeMeetings{
		meeting: &domain.ProposedMeeting{
			ID:             1,
			ResourceID:     ptr.Ptr(int64(10)),
			StartAt:        time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
			EndAt:          time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC),
			Title:          "Puppy social",
			ManualOverride: true,
			Status:         domain.MeetingOpen,
		},
		invites: map[int64]*domain.ProposedMeetingInvite{
			1: {ID: 1, ProposedMeetingID: 1, CustomerID: 7, SubjectID: ptr.Ptr(int64(70)), Status: domain.InviteSent},
			2: {ID: 2, ProposedMeetingID: 1, CustomerID: 8, Status: domain.InviteSent},
			3: {ID: 3, ProposedMeetingID: 1, CustomerID: 9, Status: domain.InviteUninvited},
		},
	}
}

func TestExecute_ConvertsInvite(t *testing.T) {
	meetings := newMeetings()
	creator := &fakeCreator{}
	uc := NewUseCase(meetings, creator, passthroughTx{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{InviteID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(900), resp.AppointmentID)
	assert.Equal(t, int64(2), resp.StaleInvites)
	assert.Equal(t, []string{"meeting", "invite"}, meetings.locked)

	req := creator.got
	require.NotNil(t, req)
	assert.Equal(t, domain.KindBusiness, req.Kind)
	assert.Equal(t, domain.AppointmentMatched, req.Status)
	assert.Equal(t, int64(7), req.CustomerID)
	assert.Equal(t, []int64{70}, req.SubjectIDs)
	assert.Equal(t, []int64{10}, req.ResourceIDs)
	assert.Equal(t, meetings.meeting.StartAt, req.StartAt)
	assert.Equal(t, meetings.meeting.EndAt, req.EndAt)
	assert.True(t, req.ManualOverride)

	assert.Equal(t, domain.InviteAccepted, meetings.invites[1].Status)
	assert.Equal(t, domain.InviteStale, meetings.invites[2].Status)
	assert.Equal(t, domain.InviteStale, meetings.invites[3].Status)
	assert.Equal(t, domain.MeetingConverted, meetings.meeting.Status)
	assert.Equal(t, int64(900), *meetings.meeting.AppointmentID)
}

func TestExecute_SubjectFromRequest(t *testing.T) {
	meetings := newMeetings()
	creator := &fakeCreator{}
	uc := NewUseCase(meetings, creator, passthroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{InviteID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, creator.got)

	_, err = uc.Execute(context.Background(), &Request{InviteID: 2, SubjectID: ptr.Ptr(int64(80))})
	require.NoError(t, err)
	assert.Equal(t, []int64{80}, creator.got.SubjectIDs)
}

func TestExecute_ResourcelessMeetingBecomesEvent(t *testing.T) {
	meetings := newMeetings()
	meetings.meeting.ResourceID = nil
	creator := &fakeCreator{}
	uc := NewUseCase(meetings, creator, passthroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{InviteID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.KindEvent, creator.got.Kind)
	assert.Empty(t, creator.got.ResourceIDs)
}

func TestExecute_BookingRejectedLeavesInvitesUntouched(t *testing.T) {
	meetings := newMeetings()
	creator := &fakeCreator{err: create_appointment.ErrOverlapConflict}
	uc := NewUseCase(meetings, creator, passthroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{InviteID: 1})
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)

	assert.Equal(t, domain.InviteSent, meetings.invites[1].Status)
	assert.Equal(t, domain.InviteSent, meetings.invites[2].Status)
	assert.Equal(t, domain.MeetingOpen, meetings.meeting.Status)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("meeting converted", func(t *testing.T) {
		meetings := newMeetings()
		meetings.meeting.Status = domain.MeetingConverted
		uc := NewUseCase(meetings, &fakeCreator{}, passthroughTx{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{InviteID: 1})
		assert.ErrorIs(t, err, ErrMeetingClosed)
	})

	t.Run("stale invite", func(t *testing.T) {
		meetings := newMeetings()
		meetings.invites[1].Status = domain.InviteStale
		uc := NewUseCase(meetings, &fakeCreator{}, passthroughTx{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{InviteID: 1})
		assert.ErrorIs(t, err, ErrInviteClosed)
	})

	t.Run("unknown invite", func(t *testing.T) {
		uc := NewUseCase(newMeetings(), &fakeCreator{}, passthroughTx{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{InviteID: 42})
		assert.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := NewUseCase(newMeetings(), &fakeCreator{}, passthroughTx{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{InviteID: 0})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
