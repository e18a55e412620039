package inviteretry

import "errors"

var (
	// ErrInvalidSchedule возвращается, когда cron выражение не удалось разобрать
	ErrInvalidSchedule = errors.New("inviteretry: invalid schedule")
)
