package meetings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("proposed meeting not found")

	// ErrCategoryNotFound возвращается, когда категория клиентов не найдена
	ErrCategoryNotFound = errors.New("customer category not found")

	// ErrMeetingClosed возвращается при добавлении приглашений в уже состоявшуюся встречу
	ErrMeetingClosed = errors.New("proposed meeting is already converted")

	// ErrMeetingBooked возвращается при удалении встречи, по которой есть активная запись
	ErrMeetingBooked = errors.New("proposed meeting has a live appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("meetings: invalid input data: %w", domain.ErrValidation)

	// ErrResourceNotFound возвращается, когда ресурс встречи не существует или неактивен
	ErrResourceNotFound = fmt.Errorf("meetings: resource not found or inactive: %w", domain.ErrValidation)

	// ErrCustomerNotFound возвращается, когда часть клиентов не существует
	ErrCustomerNotFound = fmt.Errorf("meetings: customers not found: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
