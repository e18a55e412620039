package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

type memorySettings struct {
	settings *domain.CalendarSettings
	creates  int
	err      error
}

func (m *memorySettings) GetOrCreate(context.Context) (*domain.CalendarSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		m.creates++
		m.settings = domain.DefaultCalendarSettings()
	}
	copied := *m.settings
	return &copied, nil
}

func (m *memorySettings) Update(_ context.Context, openDaysAhead *int, displayStart, displayEnd *string) (*domain.CalendarSettings, error) {
	if openDaysAhead != nil {
		m.settings.OpenDaysAhead = *openDaysAhead
	}
	if displayStart != nil {
		m.settings.DisplayStartTime = types.TimeString(*displayStart)
	}
	if displayEnd != nil {
		m.settings.DisplayEndTime = types.TimeString(*displayEnd)
	}
	copied := *m.settings
	return &copied, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGet_MaterializesDefaultsOnce(t *testing.T) {
	repo := &memorySettings{}
	svc := NewService(repo, passthroughTx{}, nopLogger{})

	for i := 0; i < 2; i++ {
		settings, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 30, settings.OpenDaysAhead)
		assert.Equal(t, types.TimeString("08:00"), settings.DisplayStartTime)
		assert.Equal(t, types.TimeString("20:00"), settings.DisplayEndTime)
	}
	assert.Equal(t, 1, repo.creates)
}

func TestGet_StorageFailureIsConfigurationUnavailable(t *testing.T) {
	svc := NewService(&memorySettings{err: errors.New("connection refused")}, passthroughTx{}, nopLogger{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrConfigurationUnavailable)
}

func TestUpdate(t *testing.T) {
	repo := &memorySettings{}
	svc := NewService(repo, passthroughTx{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		OpenDaysAhead:    ptr.Ptr(0),
		DisplayStartTime: ptr.Ptr("07:30:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.OpenDaysAhead)
	assert.Equal(t, "07:30", resp.DisplayStartTime)
	assert.Equal(t, "20:00", resp.DisplayEndTime)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{"empty", &models.UpdateSettingsRequest{}},
		{"negative horizon", &models.UpdateSettingsRequest{OpenDaysAhead: ptr.Ptr(-1)}},
		{"horizon too far", &models.UpdateSettingsRequest{OpenDaysAhead: ptr.Ptr(366)}},
		{"bad format", &models.UpdateSettingsRequest{DisplayStartTime: ptr.Ptr("8am")}},
		{"start after stored end", &models.UpdateSettingsRequest{DisplayStartTime: ptr.Ptr("21:00")}},
		{"start equals end", &models.UpdateSettingsRequest{DisplayStartTime: ptr.Ptr("10:00"), DisplayEndTime: ptr.Ptr("10:00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memorySettings{}
			svc := NewService(repo, passthroughTx{}, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)

			if repo.settings != nil {
				assert.Equal(t, domain.DefaultOpenDaysAhead, repo.settings.OpenDaysAhead)
			}
		})
	}
}
