package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID     int64                    // ID клиента (не нужен для private)
	SubjectIDs     []int64                  // ID животных, первое определяет длительность
	ResourceIDs    []int64                  // Один ресурс или группа; пусто только для event
	StartAt        time.Time                // Начало
	EndAt          time.Time                // Окончание; нулевое значение = по правилу длительности
	Kind           domain.AppointmentKind   // private | business | event
	ManualOverride bool                     // Доверять EndAt без проверки правила
	Status         domain.AppointmentStatus // pending (по умолчанию) | approved | matched
	Notes          *string
}

// Response модель ответа с созданными записями
type Response struct {
	AppointmentIDs  []int64
	GroupID         *string // заполнен для записи на несколько ресурсов
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Appointments    []*domain.Appointment
}
