package domain

import "time"

// DurationStatus discriminates the outcome of a duration lookup
type DurationStatus string

const (
	DurationSupported   DurationStatus = "supported"
	DurationUnsupported DurationStatus = "unsupported"
)

// DurationRule maps (subject type, resource) to service minutes.
// A nil Minutes is a tombstone: the resource cannot service that subject type.
type DurationRule struct {
	ID            int64
	SubjectTypeID int64
	ResourceID    int64
	Minutes       *int
	Reason        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTombstone reports whether the rule marks the pair as unsupported
func (r *DurationRule) IsTombstone() bool {
	return r.Minutes == nil
}

// DurationResult is the resolver's discriminated answer
type DurationResult struct {
	Status  DurationStatus
	Minutes int
	Reason  string
}

// IsSupported reports whether a usable duration was found
func (r DurationResult) IsSupported() bool {
	return r.Status == DurationSupported && r.Minutes > 0
}

// Duration returns the supported duration; zero when unsupported
func (r DurationResult) Duration() time.Duration {
	if !r.IsSupported() {
		return 0
	}
	return time.Duration(r.Minutes) * time.Minute
}

// Supported builds a supported result
func Supported(minutes int) DurationResult {
	return DurationResult{Status: DurationSupported, Minutes: minutes}
}

// Unsupported builds an unsupported result with a reason for the caller
func Unsupported(reason string) DurationResult {
	return DurationResult{Status: DurationUnsupported, Reason: reason}
}
