package get_available_dates

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_dates: invalid input data: %w", domain.ErrValidation)

	// ErrSubjectNotFound возвращается, когда животное не найдено
	ErrSubjectNotFound = errors.New("get_available_dates: subject not found")

	// ErrUnsupportedCombination возвращается, когда ни один ресурс категории не обслуживает тип животного
	ErrUnsupportedCombination = fmt.Errorf("get_available_dates: %w", domain.ErrUnsupportedCombination)

	// ErrConfigurationUnavailable возвращается, когда настройки календаря недоступны
	ErrConfigurationUnavailable = fmt.Errorf("get_available_dates: %w", domain.ErrConfigurationUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
