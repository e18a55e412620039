package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidTimeRange возвращается, когда окончание не позже начала
	ErrInvalidTimeRange = fmt.Errorf("create_appointment: end must be after start: %w", domain.ErrValidation)

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = fmt.Errorf("create_appointment: customer not found: %w", domain.ErrValidation)

	// ErrSubjectNotFound возвращается, когда животное не найдено или принадлежит другому клиенту
	ErrSubjectNotFound = fmt.Errorf("create_appointment: subject not found for customer: %w", domain.ErrValidation)

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("create_appointment: resource not found: %w", domain.ErrValidation)

	// ErrResourceInactive возвращается, когда ресурс выключен
	ErrResourceInactive = fmt.Errorf("create_appointment: resource is inactive: %w", domain.ErrValidation)

	// ErrDurationMismatch возвращается, когда длительность без ручного режима отличается от правила
	ErrDurationMismatch = fmt.Errorf("create_appointment: duration does not match the duration rule: %w", domain.ErrValidation)

	// ErrUnsupportedCombination возвращается, когда ресурс не обслуживает тип животного
	ErrUnsupportedCombination = fmt.Errorf("create_appointment: %w", domain.ErrUnsupportedCombination)

	// ErrOverlapConflict возвращается, когда интервал пересекается с существующей записью
	ErrOverlapConflict = fmt.Errorf("create_appointment: %w", domain.ErrOverlapConflict)

	// ErrConfigurationUnavailable возвращается, когда служебный клиент для приватных записей недоступен
	ErrConfigurationUnavailable = fmt.Errorf("create_appointment: %w", domain.ErrConfigurationUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
