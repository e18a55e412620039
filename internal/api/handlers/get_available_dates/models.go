package get_available_dates

import (
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	SubjectID int64           `json:"subjectId"`
	Category  string          `json:"category"`
	Dates     []AvailableDate `json:"dates"`
}

// AvailableDate одна дата горизонта бронирования
type AvailableDate struct {
	Date              string `json:"date"`
	IsAvailable       bool   `json:"isAvailable"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{
			Date:              d.Date.Format(domain.DateFormat),
			IsAvailable:       d.IsAvailable,
			RemainingCapacity: d.RemainingCapacity,
		}
	}

	return &AvailableDatesResponse{
		SubjectID: resp.SubjectID,
		Category:  string(resp.Category),
		Dates:     dates,
	}
}
