package domain

import "time"

// ProposedMeetingStatus lifecycle of a proposed meeting
type ProposedMeetingStatus string

const (
	MeetingOpen      ProposedMeetingStatus = "open"
	MeetingConverted ProposedMeetingStatus = "converted"
)

// ProposedMeeting is a tentative slot offered to several candidate customers
type ProposedMeeting struct {
	ID             int64
	ResourceID     *int64
	StartAt        time.Time
	EndAt          time.Time
	Title          string
	ManualOverride bool
	Status         ProposedMeetingStatus
	AppointmentID  *int64 // set once an invite has been accepted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen reports whether invites may still be sent or accepted
func (m *ProposedMeeting) IsOpen() bool {
	return m.Status == MeetingOpen
}

// InviteStatus lifecycle of one invite: uninvited -> sent -> (accepted | stale)
type InviteStatus string

const (
	InviteUninvited InviteStatus = "uninvited"
	InviteSent      InviteStatus = "sent"
	InviteAccepted  InviteStatus = "accepted"
	InviteStale     InviteStatus = "stale"
)

// InviteSource how the candidate was added to the meeting
type InviteSource string

const (
	SourceIndividual InviteSource = "individual"
	SourceCategory   InviteSource = "category"
)

// ProposedMeetingInvite one candidate customer of a proposed meeting
type ProposedMeetingInvite struct {
	ID                int64
	ProposedMeetingID int64
	CustomerID        int64
	SubjectID         *int64
	Status            InviteStatus
	NotificationCount int // successful deliveries, only ever grows
	DeliveryAttempts  int // failed deliveries since the last success
	LastError         *string
	LastSentAt        *time.Time
	Source            InviteSource
	SourceCategoryID  *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanBeSent reports whether a (re-)send is allowed
func (i *ProposedMeetingInvite) CanBeSent() bool {
	return i.Status == InviteUninvited || i.Status == InviteSent
}

// CanBeAccepted reports whether the invite may be converted into an appointment
func (i *ProposedMeetingInvite) CanBeAccepted() bool {
	return i.Status == InviteUninvited || i.Status == InviteSent
}

// DeliveryResult per-invite outcome of a send
type DeliveryResult struct {
	InviteID          int64
	CustomerID        int64
	Delivered         bool
	Skipped           bool // invite was accepted or went stale before dispatch
	NotificationCount int
	Err               error
}

// InviteNotification content of one outbound invite message
type InviteNotification struct {
	InviteID     int64
	CustomerName string
	Address      string // phone in E.164 or email, see Customer.ContactAddress
	Title        string
	StartAt      time.Time
	EndAt        time.Time
}
