package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID     int64 `json:"userId"`
	WholeGroup bool  `json:"wholeGroup"` // отменить все записи группы (несколько ресурсов)
}

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	ResourceID      *int64     `json:"resourceId,omitempty"`
	CustomerID      *int64     `json:"customerId,omitempty"`
	GroupID         *string    `json:"groupId,omitempty"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		CustomerID:      r.CustomerID,
		GroupID:         r.GroupID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.ResourceID != nil {
		filter.ResourceIDs = []int64{*r.ResourceID}
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	ResourceID      *int64    `json:"resourceId,omitempty"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	Kind            string    `json:"kind"`
	CustomerID      int64     `json:"customerId"`
	SubjectIDs      []int64   `json:"subjectIds"`
	GroupID         *string   `json:"groupId,omitempty"`
	ManualOverride  bool      `json:"manualOverride"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// CancelResponse ответ на отмену
type CancelResponse struct {
	Cancelled int64 `json:"cancelled"` // количество отменённых записей
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	subjectIDs := a.SubjectIDs
	if subjectIDs == nil {
		subjectIDs = []int64{}
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ResourceID:      a.ResourceID,
		StartAt:         a.StartAt,
		EndAt:           a.EndAt,
		DurationMinutes: int(a.Duration() / time.Minute),
		Status:          string(a.Status),
		PaymentStatus:   string(a.PaymentStatus),
		Kind:            string(a.Kind),
		CustomerID:      a.CustomerID,
		SubjectIDs:      subjectIDs,
		GroupID:         a.GroupID,
		ManualOverride:  a.ManualOverride,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appointment := range appointments {
		if a := FromDomainAppointment(appointment); a != nil {
			resp.Appointments = append(resp.Appointments, *a)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
