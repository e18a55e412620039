package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerID     int64   `json:"customerId"`
	SubjectIDs     []int64 `json:"subjectIds"`
	ResourceIDs    []int64 `json:"resourceIds"`
	StartAt        string  `json:"startAt"`         // RFC3339
	EndAt          *string `json:"endAt,omitempty"` // RFC3339; не указан = по правилу длительности
	Kind           string  `json:"kind"`            // private | business | event
	ManualOverride bool    `json:"manualOverride"`
	Status         *string `json:"status,omitempty"` // pending | approved | matched
	Notes          *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	AppointmentIDs  []int64                      `json:"appointmentIds"`
	GroupID         *string                      `json:"groupId,omitempty"`
	StartAt         string                       `json:"startAt"`
	EndAt           string                       `json:"endAt"`
	DurationMinutes int                          `json:"durationMinutes"`
	Appointments    []models.AppointmentResponse `json:"appointments"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	var endAt time.Time
	if r.EndAt != nil && *r.EndAt != "" {
		endAt, err = time.Parse(time.RFC3339, *r.EndAt)
		if err != nil {
			return nil, err
		}
	}

	req := &createAppointment.Request{
		CustomerID:     r.CustomerID,
		SubjectIDs:     r.SubjectIDs,
		ResourceIDs:    r.ResourceIDs,
		StartAt:        startAt,
		EndAt:          endAt,
		Kind:           domain.AppointmentKind(r.Kind),
		ManualOverride: r.ManualOverride,
		Notes:          r.Notes,
	}
	if r.Status != nil {
		req.Status = domain.AppointmentStatus(*r.Status)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentIDs:  resp.AppointmentIDs,
		GroupID:         resp.GroupID,
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Appointments:    models.FromDomainAppointmentList(resp.Appointments).Appointments,
	}
}
