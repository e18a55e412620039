package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Request модели

// CreateMeetingRequest запрос на создание предложенной встречи
type CreateMeetingRequest struct {
	ResourceID     *int64    `json:"resourceId,omitempty"` // nil = встреча без ресурса (событие)
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Title          string    `json:"title"`
	ManualOverride bool      `json:"manualOverride"`
}

// AddInvitesRequest запрос на приглашение клиентов по списку
type AddInvitesRequest struct {
	CustomerIDs []int64 `json:"customerIds"`
}

// AddCategoryInvitesRequest запрос на приглашение всех клиентов категории
type AddCategoryInvitesRequest struct {
	CategoryID int64 `json:"categoryId"`
}

// Response модели

// InviteResponse ответ с данными приглашения
type InviteResponse struct {
	ID                int64      `json:"id"`
	CustomerID        int64      `json:"customerId"`
	SubjectID         *int64     `json:"subjectId,omitempty"`
	Status            string     `json:"status"`
	NotificationCount int        `json:"notificationCount"`
	DeliveryAttempts  int        `json:"deliveryAttempts"`
	LastError         *string    `json:"lastError,omitempty"`
	LastSentAt        *time.Time `json:"lastSentAt,omitempty"`
	Source            string     `json:"source"`
	SourceCategoryID  *int64     `json:"sourceCategoryId,omitempty"`
}

// MeetingResponse ответ с данными встречи
type MeetingResponse struct {
	ID             int64            `json:"id"`
	ResourceID     *int64           `json:"resourceId,omitempty"`
	StartAt        time.Time        `json:"startAt"`
	EndAt          time.Time        `json:"endAt"`
	Title          string           `json:"title"`
	ManualOverride bool             `json:"manualOverride"`
	Status         string           `json:"status"`
	AppointmentID  *int64           `json:"appointmentId,omitempty"`
	Invites        []InviteResponse `json:"invites"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AddInvitesResponse ответ на добавление приглашений
type AddInvitesResponse struct {
	Added   int              `json:"added"`   // новые приглашения
	Skipped int              `json:"skipped"` // клиенты, уже приглашённые ранее
	Invites []InviteResponse `json:"invites"`
}

// Методы конвертации

// FromDomainInvite конвертирует приглашение в DTO
func FromDomainInvite(i *domain.ProposedMeetingInvite) InviteResponse {
	return InviteResponse{
		ID:                i.ID,
		CustomerID:        i.CustomerID,
		SubjectID:         i.SubjectID,
		Status:            string(i.Status),
		NotificationCount: i.NotificationCount,
		DeliveryAttempts:  i.DeliveryAttempts,
		LastError:         i.LastError,
		LastSentAt:        i.LastSentAt,
		Source:            string(i.Source),
		SourceCategoryID:  i.SourceCategoryID,
	}
}

// FromDomainInvites конвертирует список приглашений в DTO
func FromDomainInvites(invites []*domain.ProposedMeetingInvite) []InviteResponse {
	resp := make([]InviteResponse, 0, len(invites))
	for _, invite := range invites {
		resp = append(resp, FromDomainInvite(invite))
	}
	return resp
}

// FromDomainMeeting конвертирует встречу и её приглашения в DTO
func FromDomainMeeting(m *domain.ProposedMeeting, invites []*domain.ProposedMeetingInvite) *MeetingResponse {
	if m == nil {
		return nil
	}

	return &MeetingResponse{
		ID:             m.ID,
		ResourceID:     m.ResourceID,
		StartAt:        m.StartAt,
		EndAt:          m.EndAt,
		Title:          m.Title,
		ManualOverride: m.ManualOverride,
		Status:         string(m.Status),
		AppointmentID:  m.AppointmentID,
		Invites:        FromDomainInvites(invites),
		CreatedAt:      m.CreatedAt,
	}
}
