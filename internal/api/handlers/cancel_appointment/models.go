package cancel_appointment

import (
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	WholeGroup bool `json:"wholeGroup"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:     userID,
		WholeGroup: r.WholeGroup,
	}
}
