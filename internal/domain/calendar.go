package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

// CalendarSettings is the operator-configured booking window.
// DisplayStartTime/DisplayEndTime only shape the manager calendar view and never restrict booking.
type CalendarSettings struct {
	ID               int64
	OpenDaysAhead    int // 0 = no future date is offered
	DisplayStartTime types.TimeString
	DisplayEndTime   types.TimeString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultCalendarSettings returns the values materialized on first read
func DefaultCalendarSettings() *CalendarSettings {
	return &CalendarSettings{
		ID:               CalendarSettingsSingletonID,
		OpenDaysAhead:    DefaultOpenDaysAhead,
		DisplayStartTime: DefaultDisplayStartTime,
		DisplayEndTime:   DefaultDisplayEndTime,
	}
}

// IsBookingClosed reports whether no future date may be offered
func (c *CalendarSettings) IsBookingClosed() bool {
	return c.OpenDaysAhead <= 0
}

// Horizon returns the inclusive first and last bookable dates relative to now
func (c *CalendarSettings) Horizon(now time.Time) (first, last time.Time) {
	first = StartOfDay(now)
	return first, first.AddDate(0, 0, c.OpenDaysAhead)
}

// InHorizon reports whether date falls within today..today+OpenDaysAhead
func (c *CalendarSettings) InHorizon(date, now time.Time) bool {
	if c.IsBookingClosed() {
		return false
	}
	first, last := c.Horizon(now)
	day := StartOfDay(date)
	return !day.Before(first) && !day.After(last)
}

// StartOfDay truncates t to local midnight in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
