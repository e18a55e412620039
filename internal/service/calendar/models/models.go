package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек календаря
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	OpenDaysAhead    *int    `json:"openDaysAhead,omitempty"`    // 0..365, 0 = запись закрыта
	DisplayStartTime *string `json:"displayStartTime,omitempty"` // HH:MM
	DisplayEndTime   *string `json:"displayEndTime,omitempty"`   // HH:MM
}

// Response модели

// SettingsResponse ответ с настройками календаря
type SettingsResponse struct {
	OpenDaysAhead    int       `json:"openDaysAhead"`
	DisplayStartTime string    `json:"displayStartTime"`
	DisplayEndTime   string    `json:"displayEndTime"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CalendarSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		OpenDaysAhead:    s.OpenDaysAhead,
		DisplayStartTime: s.DisplayStartTime.String(),
		DisplayEndTime:   s.DisplayEndTime.String(),
		UpdatedAt:        s.UpdatedAt,
	}
}
