package resolve_duration

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("resolve_duration: invalid input data: %w", domain.ErrValidation)

	// ErrSubjectTypeNotFound возвращается, когда тип животного не найден
	ErrSubjectTypeNotFound = fmt.Errorf("resolve_duration: subject type not found: %w", domain.ErrValidation)

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("resolve_duration: resource not found: %w", domain.ErrValidation)

	// ErrInactive возвращается, когда тип животного или ресурс выключены
	ErrInactive = fmt.Errorf("resolve_duration: subject type or resource is inactive: %w", domain.ErrValidation)

	// ErrInternal возвращается, когда правило не удалось прочитать; значение по умолчанию не подставляется
	ErrInternal = errors.New("resolve_duration: internal error")
)
