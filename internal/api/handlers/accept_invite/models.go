package accept_invite

import (
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
	acceptInvite "github.com/m04kA/SMC-SalonScheduling/internal/usecase/accept_invite"
)

// AcceptInviteRequest HTTP request model, тело необязательно
type AcceptInviteRequest struct {
	SubjectID *int64  `json:"subjectId,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// AcceptInviteResponse HTTP response model
type AcceptInviteResponse struct {
	InviteID      int64                       `json:"inviteId"`
	MeetingID     int64                       `json:"meetingId"`
	AppointmentID int64                       `json:"appointmentId"`
	StaleInvites  int64                       `json:"staleInvites"`
	Appointment   *models.AppointmentResponse `json:"appointment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcceptInviteRequest) ToUseCaseRequest(inviteID int64) *acceptInvite.Request {
	return &acceptInvite.Request{
		InviteID:  inviteID,
		SubjectID: r.SubjectID,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptInvite.Response) *AcceptInviteResponse {
	result := &AcceptInviteResponse{
		InviteID:      resp.InviteID,
		MeetingID:     resp.MeetingID,
		AppointmentID: resp.AppointmentID,
		StaleInvites:  resp.StaleInvites,
	}
	if resp.Appointment != nil {
		result.Appointment = models.FromDomainAppointment(resp.Appointment)
	}
	return result
}
