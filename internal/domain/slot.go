package domain

import "time"

// DateAvailability one date of the booking horizon
type DateAvailability struct {
	Date              time.Time
	IsAvailable       bool
	RemainingCapacity int // free slot positions summed over compatible resources
}

// TimeAvailability one slot position on one resource
type TimeAvailability struct {
	StartAt         time.Time
	ResourceID      int64
	ResourceName    string
	IsAvailable     bool
	DurationMinutes int
}

// Interval half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [a.Start, a.End) and [b.Start, b.End) intersect.
// Touching intervals do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Grow widens the interval by d on both sides
func (a Interval) Grow(d time.Duration) Interval {
	return Interval{Start: a.Start.Add(-d), End: a.End.Add(d)}
}
