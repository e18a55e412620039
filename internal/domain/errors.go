package domain

import "errors"

// Error taxonomy shared by the scheduling core.
// Use-case errors wrap one of these so callers can classify failures with errors.Is.
var (
	// ErrValidation malformed or missing input, rejected before any store access
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedCombination no duration is defined for the subject type at the resource;
	// recoverable through a manual override
	ErrUnsupportedCombination = errors.New("unsupported subject type and resource combination")

	// ErrOverlapConflict the requested window collides with an existing appointment
	ErrOverlapConflict = errors.New("requested window overlaps an existing appointment")

	// ErrConfigurationUnavailable calendar settings or required reference data are missing
	ErrConfigurationUnavailable = errors.New("configuration unavailable")

	// ErrDelivery a single invite notification failed
	ErrDelivery = errors.New("invite delivery failed")
)
