package update_calendar_settings

import (
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar/models"
)

// UpdateCalendarSettingsRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateCalendarSettingsRequest struct {
	OpenDaysAhead    *int    `json:"openDaysAhead,omitempty"`
	DisplayStartTime *string `json:"displayStartTime,omitempty"` // "08:00"
	DisplayEndTime   *string `json:"displayEndTime,omitempty"`   // "20:00"
}

// IsEmpty сообщает, что в запросе нет ни одного поля
func (r *UpdateCalendarSettingsRequest) IsEmpty() bool {
	return r.OpenDaysAhead == nil && r.DisplayStartTime == nil && r.DisplayEndTime == nil
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCalendarSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		OpenDaysAhead:    r.OpenDaysAhead,
		DisplayStartTime: r.DisplayStartTime,
		DisplayEndTime:   r.DisplayEndTime,
	}
}
