package get_available_times

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// validateRequest валидирует входные данные запроса и подставляет направление по умолчанию
func validateRequest(req *Request) error {
	if req.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Category == "" {
		req.Category = domain.CategoryGrooming
	}

	if !req.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	return nil
}
