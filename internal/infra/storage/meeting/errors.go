package meeting

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда предложенная встреча не найдена
	ErrMeetingNotFound = errors.New("meeting.repository: proposed meeting not found")

	// ErrInviteNotFound возвращается, когда приглашение не найдено
	ErrInviteNotFound = errors.New("meeting.repository: invite not found")

	// ErrInviteNotSendable возвращается, когда приглашение уже принято/устарело или встреча закрыта
	ErrInviteNotSendable = errors.New("meeting.repository: invite is no longer sendable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meeting.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("meeting.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meeting.repository: failed to scan row")
)
