package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Request модель запроса доступного времени на дату
type Request struct {
	SubjectID int64                  // ID животного
	Category  domain.ServiceCategory // Направление услуг, по умолчанию grooming
	Date      time.Time              // Дата (время суток игнорируется)
}

// Response модель ответа со слотами всех совместимых ресурсов
type Response struct {
	SubjectID int64
	Category  domain.ServiceCategory
	Date      time.Time
	Times     []domain.TimeAvailability // по времени начала, затем по ID ресурса
}
