package domain

import "time"

// AppointmentStatus lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentApproved  AppointmentStatus = "approved"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentMatched   AppointmentStatus = "matched" // converted from an accepted proposed meeting invite
)

// IsValid reports whether the status is known
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentPending, AppointmentApproved, AppointmentCancelled, AppointmentMatched:
		return true
	default:
		return false
	}
}

// PaymentStatus is carried on the appointment; payment processing itself lives elsewhere
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// AppointmentKind is a closed variant; every switch over it must handle all three values
type AppointmentKind string

const (
	// KindPrivate internal appointment (staff break, maintenance); uses the sentinel customer and subject
	KindPrivate AppointmentKind = "private"
	// KindBusiness regular customer booking
	KindBusiness AppointmentKind = "business"
	// KindEvent customer booking in an event-style service line, may be resource-less
	KindEvent AppointmentKind = "event"
)

// IsValid reports whether the kind is known
func (k AppointmentKind) IsValid() bool {
	switch k {
	case KindPrivate, KindBusiness, KindEvent:
		return true
	default:
		return false
	}
}

// RequiresCustomer reports whether real customer and subject records must be supplied
func (k AppointmentKind) RequiresCustomer() bool {
	switch k {
	case KindBusiness, KindEvent:
		return true
	case KindPrivate:
		return false
	default:
		return false
	}
}

// RequiresResource reports whether at least one resource must be targeted
func (k AppointmentKind) RequiresResource() bool {
	switch k {
	case KindPrivate, KindBusiness:
		return true
	case KindEvent:
		return false
	default:
		return true
	}
}

// UsesDurationRules reports whether the resolver decides the length when no override is set
func (k AppointmentKind) UsesDurationRules() bool {
	switch k {
	case KindBusiness, KindEvent:
		return true
	case KindPrivate:
		return false
	default:
		return true
	}
}

// Appointment is a committed booking of one resource for a time range
type Appointment struct {
	ID             int64
	ResourceID     *int64 // nil only for resource-less event bookings
	StartAt        time.Time
	EndAt          time.Time
	Status         AppointmentStatus
	PaymentStatus  PaymentStatus
	Kind           AppointmentKind
	CustomerID     int64
	SubjectIDs     []int64
	GroupID        *string // shared by all members of a multi-resource booking
	ManualOverride bool
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its resource
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status != AppointmentCancelled
}

// IsGrouped returns true if the appointment is a member of a multi-resource group
func (a *Appointment) IsGrouped() bool {
	return a.GroupID != nil
}

// Duration returns the length of the appointment
func (a *Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// AppointmentsFilter filters appointments for listing and overlap checks
type AppointmentsFilter struct {
	ResourceIDs     []int64    // empty = any resource
	CustomerID      *int64     // optional
	GroupID         *string    // optional
	From            *time.Time // appointments ending after From
	To              *time.Time // appointments starting before To
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled appointments
}
