package meetings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

type memoryMeetings struct {
	meetings map[int64]*domain.ProposedMeeting
	invites  []*domain.ProposedMeetingInvite
	nextID   int64
	locked   []int64
}

func newMemoryMeetings() *memoryMeetings {
	return &memoryMeetings{meetings: map[int64]*domain.ProposedMeeting{}, nextID: 1}
}

func (m *memoryMeetings) CreateMeeting(_ context.Context, meeting *domain.ProposedMeeting) (*domain.ProposedMeeting, error) {
	meeting.ID = m.nextID
	m.nextID++
	m.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (m *memoryMeetings) GetMeeting(_ context.Context, id int64) (*domain.ProposedMeeting, error) {
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	return meeting, nil
}

func (m *memoryMeetings) GetMeetingForUpdate(ctx context.Context, id int64) (*domain.ProposedMeeting, error) {
	m.locked = append(m.locked, id)
	return m.GetMeeting(ctx, id)
}

func (m *memoryMeetings) DeleteMeeting(_ context.Context, id int64) error {
	if _, ok := m.meetings[id]; !ok {
		return meetingRepo.ErrMeetingNotFound
	}
	delete(m.meetings, id)
	return nil
}

func (m *memoryMeetings) CreateInvites(_ context.Context, invites []*domain.ProposedMeetingInvite) ([]*domain.ProposedMeetingInvite, error) {
	created := make([]*domain.ProposedMeetingInvite, 0)
	for _, inv := range invites {
		duplicate := false
		for _, existing := range m.invites {
			if existing.ProposedMeetingID == inv.ProposedMeetingID && existing.CustomerID == inv.CustomerID {
				duplicate = true
			}
		}
		if duplicate {
			continue
		}
		inv.ID = int64(len(m.invites) + 1)
		m.invites = append(m.invites, inv)
		created = append(created, inv)
	}
	return created, nil
}

func (m *memoryMeetings) ListInvites(_ context.Context, meetingID int64, _ meetingRepo.InvitesFilter) ([]*domain.ProposedMeetingInvite, error) {
	out := make([]*domain.ProposedMeetingInvite, 0)
	for _, inv := range m.invites {
		if inv.ProposedMeetingID == meetingID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memoryMeetings) DeleteInvitesByMeeting(_ context.Context, meetingID int64) (int64, error) {
	kept := make([]*domain.ProposedMeetingInvite, 0)
	var removed int64
	for _, inv := range m.invites {
		if inv.ProposedMeetingID == meetingID {
			removed++
			continue
		}
		kept = append(kept, inv)
	}
	m.invites = kept
	return removed, nil
}

type fakeCustomers struct{}

func (fakeCustomers) GetCustomers(_ context.Context, ids []int64) ([]*domain.Customer, error) {
	out := make([]*domain.Customer, 0)
	for _, id := range ids {
		switch {
		case id == 1000:
			out = append(out, &domain.Customer{ID: id, Name: "internal", IsInternal: true})
		case id < 100:
			out = append(out, &domain.Customer{ID: id, Name: fmt.Sprintf("customer %d", id)})
		}
	}
	return out, nil
}

func (fakeCustomers) GetCategory(_ context.Context, id int64) (*domain.CustomerCategory, error) {
	if id != 5 {
		return nil, subjectRepo.ErrCategoryNotFound
	}
	return &domain.CustomerCategory{ID: 5, Name: "VIP"}, nil
}

func (fakeCustomers) ListCategoryMembers(_ context.Context, _ int64) ([]*domain.Customer, error) {
	return []*domain.Customer{{ID: 1}, {ID: 2}, {ID: 3}}, nil
}

type fakeResources struct{}

func (fakeResources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	switch id {
	case 10:
		return &domain.Resource{ID: 10, IsActive: true}, nil
	case 11:
		return &domain.Resource{ID: 11, IsActive: false}, nil
	default:
		return nil, resourceRepo.ErrResourceNotFound
	}
}

type fakeAppointments map[int64]*domain.Appointment

func (f fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(meetings *memoryMeetings, appointments fakeAppointments) *Service {
	return NewService(meetings, fakeCustomers{}, fakeResources{}, appointments, passthroughTx{}, nopLogger{})
}

func validRequest() *models.CreateMeetingRequest {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return &models.CreateMeetingRequest{
		ResourceID: ptr.Ptr(int64(10)),
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Title:      "  Puppy social hour ",
	}
}

func TestCreate(t *testing.T) {
	meetings := newMemoryMeetings()
	svc := newService(meetings, nil)

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Puppy social hour", resp.Title)
	assert.Equal(t, "open", resp.Status)
	assert.Empty(t, resp.Invites)
	assert.Len(t, meetings.meetings, 1)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateMeetingRequest)
		err    error
	}{
		{"empty title", func(r *models.CreateMeetingRequest) { r.Title = "   " }, ErrInvalidInput},
		{"long title", func(r *models.CreateMeetingRequest) {
			r.Title = string(make([]rune, MaxTitleLength+1))
		}, ErrInvalidInput},
		{"end before start", func(r *models.CreateMeetingRequest) { r.EndAt = r.StartAt }, ErrInvalidInput},
		{"unknown resource", func(r *models.CreateMeetingRequest) { r.ResourceID = ptr.Ptr(int64(99)) }, ErrResourceNotFound},
		{"inactive resource", func(r *models.CreateMeetingRequest) { r.ResourceID = ptr.Ptr(int64(11)) }, ErrResourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(newMemoryMeetings(), nil)
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAddInvites_SkipsDuplicates(t *testing.T) {
	meetings := newMemoryMeetings()
	svc := newService(meetings, nil)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{CustomerIDs: []int64{1, 2, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Added)
	assert.Equal(t, 0, resp.Skipped)

	resp, err = svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{CustomerIDs: []int64{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, "uninvited", resp.Invites[0].Status)
	assert.Equal(t, "individual", resp.Invites[0].Source)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Invites, 3)
}

func TestAddInvites_Rejections(t *testing.T) {
	meetings := newMemoryMeetings()
	svc := newService(meetings, nil)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{CustomerIDs: []int64{1, 500}})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{CustomerIDs: []int64{1000}})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = svc.AddInvites(context.Background(), 77, &models.AddInvitesRequest{CustomerIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrMeetingNotFound)

	meetings.meetings[created.ID].Status = domain.MeetingConverted
	_, err = svc.AddInvites(context.Background(), created.ID, &models.AddInvitesRequest{CustomerIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrMeetingClosed)
}

func TestAddCategoryInvites(t *testing.T) {
	meetings := newMemoryMeetings()
	svc := newService(meetings, nil)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	resp, err := svc.AddCategoryInvites(context.Background(), created.ID, &models.AddCategoryInvitesRequest{CategoryID: 5})
	require.NoError(t, err)

	require.Equal(t, 3, resp.Added)
	for _, inv := range resp.Invites {
		assert.Equal(t, "category", inv.Source)
		assert.Equal(t, int64(5), *inv.SourceCategoryID)
	}
	assert.Equal(t, []int64{created.ID}, meetings.locked)

	_, err = svc.AddCategoryInvites(context.Background(), created.ID, &models.AddCategoryInvitesRequest{CategoryID: 6})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDelete(t *testing.T) {
	meetings := newMemoryMeetings()
	appointments := fakeAppointments{
		40: {ID: 40, Status: domain.AppointmentMatched},
		41: {ID: 41, Status: domain.AppointmentCancelled},
	}
	svc := newService(meetings, appointments)

	open, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = svc.AddInvites(context.Background(), open.ID, &models.AddInvitesRequest{CustomerIDs: []int64{1, 2}})
	require.NoError(t, err)

	booked, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	meetings.meetings[booked.ID].Status = domain.MeetingConverted
	meetings.meetings[booked.ID].AppointmentID = ptr.Ptr(int64(40))

	cancelled, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	meetings.meetings[cancelled.ID].Status = domain.MeetingConverted
	meetings.meetings[cancelled.ID].AppointmentID = ptr.Ptr(int64(41))

	require.NoError(t, svc.Delete(context.Background(), open.ID))
	assert.Empty(t, meetings.invites)

	assert.ErrorIs(t, svc.Delete(context.Background(), booked.ID), ErrMeetingBooked)
	assert.NoError(t, svc.Delete(context.Background(), cancelled.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), open.ID), ErrMeetingNotFound)
}
