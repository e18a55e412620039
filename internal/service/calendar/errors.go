package calendar

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("calendar: invalid input data: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда настройки не удалось прочитать или сохранить
	ErrUnavailable = fmt.Errorf("calendar: settings unavailable: %w", domain.ErrConfigurationUnavailable)
)
