package get_available_dates

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// Request модель запроса доступных дат
type Request struct {
	SubjectID int64                  // ID животного
	Category  domain.ServiceCategory // Направление услуг, по умолчанию grooming
}

// Response модель ответа с датами горизонта бронирования
type Response struct {
	SubjectID int64
	Category  domain.ServiceCategory
	Dates     []domain.DateAvailability // по возрастанию даты
}
