package accept_invite

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// Request модель запроса на принятие приглашения
type Request struct {
	InviteID  int64
	SubjectID *int64 // если не указан, берётся животное из приглашения
	Notes     *string
}

// Response модель ответа
type Response struct {
	InviteID      int64
	MeetingID     int64
	AppointmentID int64
	StaleInvites  int64 // сколько соседних приглашений помечено устаревшими
	Appointment   *domain.Appointment
}
