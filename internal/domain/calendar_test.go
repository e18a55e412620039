package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarSettings_InHorizon(t *testing.T) {
	settings := &CalendarSettings{OpenDaysAhead: 30}
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	assert.True(t, settings.InHorizon(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, settings.InHorizon(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC), now))
	assert.False(t, settings.InHorizon(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, settings.InHorizon(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestCalendarSettings_ClosedWhenZeroDaysAhead(t *testing.T) {
	settings := &CalendarSettings{OpenDaysAhead: 0}
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	assert.True(t, settings.IsBookingClosed())
	assert.False(t, settings.InHorizon(now, now))
}

func TestDefaultCalendarSettings(t *testing.T) {
	settings := DefaultCalendarSettings()

	assert.Equal(t, 30, settings.OpenDaysAhead)
	assert.Equal(t, "08:00", settings.DisplayStartTime.String())
	assert.Equal(t, "20:00", settings.DisplayEndTime.String())
}
