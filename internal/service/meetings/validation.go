package meetings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

const (
	// MaxTitleLength максимальная длина названия встречи
	MaxTitleLength = domain.MaxMeetingTitleLength
	// MaxInvitesPerRequest максимальное количество клиентов в одном запросе
	MaxInvitesPerRequest = domain.MaxInvitesPerMeeting
)

func validateCreate(req *models.CreateMeetingRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, MaxTitleLength)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceId must be positive", ErrInvalidInput)
	}
	return nil
}

// validateCustomerIDs возвращает список без повторов в исходном порядке
func validateCustomerIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: customerIds must not be empty", ErrInvalidInput)
	}
	if len(ids) > MaxInvitesPerRequest {
		return nil, fmt.Errorf("%w: at most %d customers per request", ErrInvalidInput, MaxInvitesPerRequest)
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: customer id must be positive, got %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique, nil
}
