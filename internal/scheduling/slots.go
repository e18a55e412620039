// Package scheduling holds the pure slot arithmetic shared by the availability
// and booking use cases. Nothing here touches storage.
package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// ErrInvalidWorkingHours the resource schedule for the day cannot be parsed
var ErrInvalidWorkingHours = errors.New("scheduling: invalid working hours")

// OpeningWindow returns the resource's open interval on date.
// ok is false when the resource is closed that day.
func OpeningWindow(resource *domain.Resource, date time.Time) (window domain.Interval, ok bool, err error) {
	if !resource.WorkingHours.IsOpenOn(date) {
		return domain.Interval{}, false, nil
	}
	day := resource.WorkingHours.ForDay(date)

	open, err := day.OpenTime.OnDate(date)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("%w: resource=%d open time: %v", ErrInvalidWorkingHours, resource.ID, err)
	}
	closeAt, err := day.CloseTime.OnDate(date)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("%w: resource=%d close time: %v", ErrInvalidWorkingHours, resource.ID, err)
	}
	if !closeAt.After(open) {
		return domain.Interval{}, false, nil
	}

	return domain.Interval{Start: open, End: closeAt}, true, nil
}

// SlotPositions slides a window of length duration across window with the given step.
// Only positions that end within the window are returned, in ascending order.
func SlotPositions(window domain.Interval, duration, step time.Duration) []domain.Interval {
	if duration <= 0 || step <= 0 {
		return nil
	}

	positions := make([]domain.Interval, 0)
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		positions = append(positions, domain.Interval{Start: start, End: start.Add(duration)})
	}
	return positions
}

// BusyIntervals extracts occupied ranges of one resource from a mixed list of appointments.
// Cancelled appointments never occupy a resource.
func BusyIntervals(resourceID int64, appointments []*domain.Appointment) []domain.Interval {
	busy := make([]domain.Interval, 0)
	for _, a := range appointments {
		if !a.IsActive() || a.ResourceID == nil || *a.ResourceID != resourceID {
			continue
		}
		busy = append(busy, domain.Interval{Start: a.StartAt, End: a.EndAt})
	}
	return busy
}

// BlockedIntervals extracts closed ranges that apply to one resource
func BlockedIntervals(resourceID int64, windows []*domain.BlockedWindow) []domain.Interval {
	blocked := make([]domain.Interval, 0)
	for _, w := range windows {
		if w.AppliesTo(resourceID) {
			blocked = append(blocked, domain.Interval{Start: w.StartAt, End: w.EndAt})
		}
	}
	return blocked
}

// IsFree reports whether candidate keeps at least buffer away from every busy interval
// and does not touch any blocked interval.
func IsFree(candidate domain.Interval, buffer time.Duration, busy, blocked []domain.Interval) bool {
	padded := candidate.Grow(buffer)
	for _, b := range busy {
		if padded.Overlaps(b) {
			return false
		}
	}
	for _, b := range blocked {
		if candidate.Overlaps(b) {
			return false
		}
	}
	return true
}

// Conflicts returns the active appointments on resourceID that collide with candidate
func Conflicts(candidate domain.Interval, resourceID int64, buffer time.Duration, appointments []*domain.Appointment) []*domain.Appointment {
	padded := candidate.Grow(buffer)
	conflicts := make([]*domain.Appointment, 0)
	for _, a := range appointments {
		if !a.IsActive() || a.ResourceID == nil || *a.ResourceID != resourceID {
			continue
		}
		if padded.Overlaps(domain.Interval{Start: a.StartAt, End: a.EndAt}) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts
}

// DayRequest input of ResourceDay
type DayRequest struct {
	Resource     *domain.Resource
	Date         time.Time
	Duration     time.Duration
	Step         time.Duration
	Now          time.Time
	Appointments []*domain.Appointment
	Blocked      []*domain.BlockedWindow
}

// ResourceDay computes every slot position of one resource on one date.
// Positions starting before Now are dropped; the rest are marked free or taken.
func ResourceDay(req DayRequest) ([]domain.TimeAvailability, error) {
	window, ok, err := OpeningWindow(req.Resource, req.Date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.TimeAvailability{}, nil
	}

	busy := BusyIntervals(req.Resource.ID, req.Appointments)
	blocked := BlockedIntervals(req.Resource.ID, req.Blocked)
	minutes := int(req.Duration / time.Minute)

	result := make([]domain.TimeAvailability, 0)
	for _, pos := range SlotPositions(window, req.Duration, req.Step) {
		if pos.Start.Before(req.Now) {
			continue
		}
		result = append(result, domain.TimeAvailability{
			StartAt:         pos.Start,
			ResourceID:      req.Resource.ID,
			ResourceName:    req.Resource.Name,
			IsAvailable:     IsFree(pos, req.Resource.Buffer(), busy, blocked),
			DurationMinutes: minutes,
		})
	}

	return result, nil
}

// CountFree returns the number of available positions
func CountFree(slots []domain.TimeAvailability) int {
	count := 0
	for _, s := range slots {
		if s.IsAvailable {
			count++
		}
	}
	return count
}

// SortTimes orders slots by start time, then by resource id
func SortTimes(slots []domain.TimeAvailability) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].StartAt.Equal(slots[j].StartAt) {
			return slots[i].StartAt.Before(slots[j].StartAt)
		}
		return slots[i].ResourceID < slots[j].ResourceID
	})
}

// HorizonDates lists every date from first to last inclusive
func HorizonDates(first, last time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for d := domain.StartOfDay(first); !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
