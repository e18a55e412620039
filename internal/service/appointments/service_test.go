package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

type memoryAppointments struct {
	items map[int64]*domain.Appointment
	last  domain.AppointmentsFilter
}

func (m *memoryAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (m *memoryAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.last = filter
	out := make([]*domain.Appointment, 0)
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	m.items[id].Status = status
	return nil
}

func (m *memoryAppointments) CancelGroup(_ context.Context, groupID string) (int64, error) {
	var n int64
	for _, a := range m.items {
		if a.GroupID != nil && *a.GroupID == groupID && a.IsActive() {
			a.Status = domain.AppointmentCancelled
			n++
		}
	}
	return n, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRepo() *memoryAppointments {
	group := "7d1c3c9e-8a0b-4bb8-9c55-1f2a3b4c5d6e"
	start := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	return &memoryAppointments{items: map[int64]*domain.Appointment{
		1: {ID: 1, ResourceID: ptr.Ptr(int64(10)), StartAt: start, EndAt: start.Add(45 * time.Minute), Status: domain.AppointmentPending, GroupID: &group},
		2: {ID: 2, ResourceID: ptr.Ptr(int64(11)), StartAt: start, EndAt: start.Add(45 * time.Minute), Status: domain.AppointmentPending, GroupID: &group},
		3: {ID: 3, ResourceID: ptr.Ptr(int64(12)), StartAt: start, EndAt: start.Add(30 * time.Minute), Status: domain.AppointmentCancelled},
	}}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newRepo(), passthroughTx{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, []int64{}, resp.SubjectIDs)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_SingleMember(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, passthroughTx{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Cancelled)
	assert.Equal(t, domain.AppointmentCancelled, repo.items[1].Status)
	assert.Equal(t, domain.AppointmentPending, repo.items[2].Status)
}

func TestCancel_WholeGroup(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, passthroughTx{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{UserID: 5, WholeGroup: true})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Cancelled)
	assert.False(t, repo.items[1].IsActive())
	assert.False(t, repo.items[2].IsActive())
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc := NewService(newRepo(), passthroughTx{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), 3, &models.CancelAppointmentRequest{UserID: 5})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestList_Filter(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, passthroughTx{}, nopLogger{})

	from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		ResourceID: ptr.Ptr(int64(10)),
		From:       &from,
		To:         &to,
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 3)
	assert.Equal(t, []int64{10}, repo.last.ResourceIDs)
	assert.Equal(t, domain.AppointmentPending, *repo.last.Status)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{From: &to, To: &from})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
