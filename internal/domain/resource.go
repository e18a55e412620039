package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

// ServiceCategory is the closed set of service lines a resource belongs to
type ServiceCategory string

const (
	CategoryGrooming ServiceCategory = "grooming"
	CategoryDaycare  ServiceCategory = "daycare"
	CategoryEvent    ServiceCategory = "event"
)

// IsValid reports whether the category is one of the known values
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryGrooming, CategoryDaycare, CategoryEvent:
		return true
	default:
		return false
	}
}

// Resource is a bookable station (a grooming table, a daycare room, an event hall)
type Resource struct {
	ID            int64
	Name          string
	Category      ServiceCategory
	IsActive      bool
	BufferMinutes int // required gap before and after every appointment, 0 = none
	WorkingHours  WorkingHours
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DaySchedule opening hours of a resource for one weekday
type DaySchedule struct {
	IsOpen    bool              `json:"isOpen"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
}

// WorkingHours weekly schedule of a resource
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForDay returns the schedule for the weekday of date
func (w WorkingHours) ForDay(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// IsOpenOn reports whether the schedule has usable hours on date
func (w WorkingHours) IsOpenOn(date time.Time) bool {
	day := w.ForDay(date)
	return day.IsOpen && day.OpenTime != nil && day.CloseTime != nil
}

// Buffer returns the resource's inter-appointment gap as a duration
func (r *Resource) Buffer() time.Duration {
	return time.Duration(r.BufferMinutes) * time.Minute
}

// BlockedWindow is a closed period on one resource, or on all resources when ResourceID is nil
type BlockedWindow struct {
	ID         int64
	ResourceID *int64
	StartAt    time.Time
	EndAt      time.Time
	Reason     string
	CreatedAt  time.Time
}

// AppliesTo reports whether the window closes the given resource
func (b *BlockedWindow) AppliesTo(resourceID int64) bool {
	return b.ResourceID == nil || *b.ResourceID == resourceID
}
