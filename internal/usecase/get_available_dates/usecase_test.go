package get_available_dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

type fakeSubjects struct{}

func (fakeSubjects) GetSubject(_ context.Context, id int64) (*domain.Subject, error) {
	if id == 1 {
		return &domain.Subject{ID: 1, CustomerID: 7, SubjectTypeID: 3, Name: "Rex"}, nil
	}
	return nil, subjectRepo.ErrSubjectNotFound
}

type fakeResources struct {
	resources []*domain.Resource
	blocked   []*domain.BlockedWindow
}

func (f *fakeResources) List(_ context.Context, filter resourceRepo.Filter) ([]*domain.Resource, error) {
	out := make([]*domain.Resource, 0)
	for _, r := range f.resources {
		if filter.Category != nil && r.Category != *filter.Category {
			continue
		}
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResources) ListBlockedWindows(context.Context, []int64, time.Time, time.Time) ([]*domain.BlockedWindow, error) {
	return f.blocked, nil
}

type fakeAppointments struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointments) List(context.Context, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeCalendar struct {
	settings *domain.CalendarSettings
	err      error
}

func (f *fakeCalendar) Get(context.Context) (*domain.CalendarSettings, error) {
	return f.settings, f.err
}

type fakeResolver struct {
	results map[int64]domain.DurationResult
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, _, resourceID int64) (domain.DurationResult, error) {
	if f.err != nil {
		return domain.DurationResult{}, f.err
	}
	if r, ok := f.results[resourceID]; ok {
		return r, nil
	}
	return domain.Unsupported("no rule"), nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func everyDay(open, closeAt string) domain.WorkingHours {
	day := domain.DaySchedule{IsOpen: true, OpenTime: ptr.Ptr(types.TimeString(open)), CloseTime: ptr.Ptr(types.TimeString(closeAt))}
	return domain.WorkingHours{Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day, Saturday: day, Sunday: day}
}

type fixture struct {
	resources    *fakeResources
	appointments *fakeAppointments
	calendar     *fakeCalendar
	resolver     *fakeResolver
}

func newFixture() *fixture {
	return &fixture{
		resources: &fakeResources{resources: []*domain.Resource{
			{ID: 10, Name: "Table 1", Category: domain.CategoryGrooming, IsActive: true, WorkingHours: everyDay("09:00", "12:00")},
			{ID: 20, Name: "Hall", Category: domain.CategoryEvent, IsActive: true, WorkingHours: everyDay("09:00", "12:00")},
		}},
		appointments: &fakeAppointments{},
		calendar:     &fakeCalendar{settings: domain.DefaultCalendarSettings()},
		resolver:     &fakeResolver{results: map[int64]domain.DurationResult{10: domain.Supported(60)}},
	}
}

func (f *fixture) useCase(now time.Time) *UseCase {
	return NewUseCase(fakeSubjects{}, f.resources, f.appointments, f.calendar, f.resolver, time.UTC, 60, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute_HorizonBoundaries(t *testing.T) {
	f := newFixture()
	f.calendar.settings.OpenDaysAhead = 30

	resp, err := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)).
		Execute(context.Background(), &Request{SubjectID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 31)
	assert.Equal(t, domain.CategoryGrooming, resp.Category)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), resp.Dates[30].Date)

	for i := 1; i < len(resp.Dates); i++ {
		assert.True(t, resp.Dates[i-1].Date.Before(resp.Dates[i].Date))
		assert.NotEqual(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), resp.Dates[i].Date)
	}
	assert.Equal(t, 3, resp.Dates[0].RemainingCapacity)
	assert.True(t, resp.Dates[0].IsAvailable)
}

func TestExecute_ZeroOpenDaysAheadIsEmpty(t *testing.T) {
	f := newFixture()
	f.calendar.settings.OpenDaysAhead = 0

	for _, category := range []domain.ServiceCategory{domain.CategoryGrooming, domain.CategoryEvent, domain.CategoryDaycare} {
		resp, err := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)).
			Execute(context.Background(), &Request{SubjectID: 1, Category: category})
		require.NoError(t, err)
		assert.Empty(t, resp.Dates)
	}
}

func TestExecute_CapacityCountsFreePositions(t *testing.T) {
	f := newFixture()
	f.calendar.settings.OpenDaysAhead = 1
	f.appointments.appointments = []*domain.Appointment{
		{ResourceID: ptr.Ptr(int64(10)), StartAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC), Status: domain.AppointmentApproved},
	}
	// весь следующий день закрыт
	f.resources.blocked = []*domain.BlockedWindow{
		{StartAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	resp, err := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)).
		Execute(context.Background(), &Request{SubjectID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 2)
	assert.Equal(t, 2, resp.Dates[0].RemainingCapacity)
	assert.True(t, resp.Dates[0].IsAvailable)
	assert.Equal(t, 0, resp.Dates[1].RemainingCapacity)
	assert.False(t, resp.Dates[1].IsAvailable)
}

func TestExecute_UnsupportedPropagates(t *testing.T) {
	f := newFixture()
	f.resolver.results = map[int64]domain.DurationResult{}

	_, err := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)).
		Execute(context.Background(), &Request{SubjectID: 1})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCombination)
}

func TestExecute_LookupErrorPropagates(t *testing.T) {
	f := newFixture()
	f.resolver.err = errors.New("rules table unavailable")

	resp, err := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)).
		Execute(context.Background(), &Request{SubjectID: 1})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()
	uc := f.useCase(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{SubjectID: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{SubjectID: 1, Category: "spa"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SubjectID: 404})
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	f.calendar.err = errors.New("db down")
	_, err = uc.Execute(context.Background(), &Request{SubjectID: 1})
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
}
