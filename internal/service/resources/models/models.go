package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Response модели

// DayScheduleResponse часы работы ресурса в один день недели
type DayScheduleResponse struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// WorkingHoursResponse недельное расписание ресурса
type WorkingHoursResponse struct {
	Monday    DayScheduleResponse `json:"monday"`
	Tuesday   DayScheduleResponse `json:"tuesday"`
	Wednesday DayScheduleResponse `json:"wednesday"`
	Thursday  DayScheduleResponse `json:"thursday"`
	Friday    DayScheduleResponse `json:"friday"`
	Saturday  DayScheduleResponse `json:"saturday"`
	Sunday    DayScheduleResponse `json:"sunday"`
}

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Category      string               `json:"category"`
	IsActive      bool                 `json:"isActive"`
	BufferMinutes int                  `json:"bufferMinutes"`
	WorkingHours  WorkingHoursResponse `json:"workingHours"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// BlockedWindowResponse закрытый период ресурса (или всего салона)
type BlockedWindowResponse struct {
	ID         int64     `json:"id"`
	ResourceID *int64    `json:"resourceId,omitempty"` // nil = весь салон
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Reason     string    `json:"reason"`
}

// BlockedWindowListResponse ответ со списком закрытых периодов
type BlockedWindowListResponse struct {
	BlockedWindows []BlockedWindowResponse `json:"blockedWindows"`
}

// Методы конвертации

func fromDomainDay(d domain.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{IsOpen: d.IsOpen}
	if d.OpenTime != nil {
		open := d.OpenTime.String()
		resp.OpenTime = &open
	}
	if d.CloseTime != nil {
		closeAt := d.CloseTime.String()
		resp.CloseTime = &closeAt
	}
	return resp
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:            r.ID,
		Name:          r.Name,
		Category:      string(r.Category),
		IsActive:      r.IsActive,
		BufferMinutes: r.BufferMinutes,
		WorkingHours: WorkingHoursResponse{
			Monday:    fromDomainDay(r.WorkingHours.Monday),
			Tuesday:   fromDomainDay(r.WorkingHours.Tuesday),
			Wednesday: fromDomainDay(r.WorkingHours.Wednesday),
			Thursday:  fromDomainDay(r.WorkingHours.Thursday),
			Friday:    fromDomainDay(r.WorkingHours.Friday),
			Saturday:  fromDomainDay(r.WorkingHours.Saturday),
			Sunday:    fromDomainDay(r.WorkingHours.Sunday),
		},
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}

	for _, resource := range resources {
		if r := FromDomainResource(resource); r != nil {
			resp.Resources = append(resp.Resources, *r)
		}
	}

	return resp
}

// FromDomainBlockedWindows конвертирует закрытые периоды в DTO
func FromDomainBlockedWindows(windows []*domain.BlockedWindow) *BlockedWindowListResponse {
	resp := &BlockedWindowListResponse{
		BlockedWindows: make([]BlockedWindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.BlockedWindows = append(resp.BlockedWindows, BlockedWindowResponse{
			ID:         w.ID,
			ResourceID: w.ResourceID,
			StartAt:    w.StartAt,
			EndAt:      w.EndAt,
			Reason:     w.Reason,
		})
	}

	return resp
}
