package get_available_times

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date      string          `json:"date"`
	SubjectID int64           `json:"subjectId"`
	Category  string          `json:"category"`
	Times     []AvailableTime `json:"times"`
}

// AvailableTime одна позиция слота на одном ресурсе
type AvailableTime struct {
	Time            string `json:"time"`    // HH:MM в часовом поясе салона
	StartAt         string `json:"startAt"` // RFC3339
	ResourceID      int64  `json:"resourceId"`
	ResourceName    string `json:"resourceName"`
	IsAvailable     bool   `json:"isAvailable"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]AvailableTime, len(resp.Times))
	for i, slot := range resp.Times {
		times[i] = AvailableTime{
			Time:            slot.StartAt.Format(domain.TimeFormat),
			StartAt:         slot.StartAt.Format(time.RFC3339),
			ResourceID:      slot.ResourceID,
			ResourceName:    slot.ResourceName,
			IsAvailable:     slot.IsAvailable,
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableTimesResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		SubjectID: resp.SubjectID,
		Category:  string(resp.Category),
		Times:     times,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(subjectIDStr, category, dateStr string) (*getAvailableTimes.Request, error) {
	subjectID, err := strconv.ParseInt(subjectIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		SubjectID: subjectID,
		Category:  domain.ServiceCategory(category),
		Date:      date,
	}, nil
}
