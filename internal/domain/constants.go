package domain

// Calendar settings defaults, materialized on first read
const (
	DefaultOpenDaysAhead    = 30
	DefaultDisplayStartTime = "08:00"
	DefaultDisplayEndTime   = "20:00"
)

// Business validation constants
const (
	MinOpenDaysAhead            = 0
	MaxOpenDaysAhead            = 365
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 720
	MaxBufferMinutes            = 240
	MaxNotesLength              = 500
	MaxResourcesPerGroup        = 10
	MaxMeetingTitleLength       = 200
	MaxInvitesPerMeeting        = 500
	DefaultSlotStepMinutes      = 15
	CalendarSettingsSingletonID = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that occupy a resource for overlap purposes
var BlockingStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentApproved,
	AppointmentMatched,
}
