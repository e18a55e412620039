package resolve_duration

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// Request модель запроса длительности
type Request struct {
	SubjectTypeID int64
	ResourceID    int64
	// SelectionKey ключ выбора, для которого клиент отправил запрос.
	// Возвращается без изменений, клиент отбрасывает ответы с устаревшим ключом
	SelectionKey string
}

// Response модель ответа
type Response struct {
	SelectionKey string
	Status       domain.DurationStatus
	Minutes      int
	Reason       string
}
