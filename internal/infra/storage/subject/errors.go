package subject

import "errors"

var (
	// ErrSubjectNotFound возвращается, когда животное (subject) не найдено
	ErrSubjectNotFound = errors.New("subject.repository: subject not found")

	// ErrSubjectTypeNotFound возвращается, когда тип (порода) не найден
	ErrSubjectTypeNotFound = errors.New("subject.repository: subject type not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("subject.repository: customer not found")

	// ErrCategoryNotFound возвращается, когда категория клиентов не найдена
	ErrCategoryNotFound = errors.New("subject.repository: customer category not found")

	// ErrInternalNotFound возвращается, когда служебный клиент или животное ещё не созданы
	ErrInternalNotFound = errors.New("subject.repository: internal customer or subject missing")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subject.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("subject.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subject.repository: failed to scan row")
)
