package send_invites

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// Response результат отправки: по одному DeliveryResult на приглашение в порядке обработки
type Response struct {
	MeetingID int64 // 0 для повторной отправки по нескольким встречам
	Results   []domain.DeliveryResult
	Sent      int
	Failed    int
	Skipped   int // приглашения, принятые или устаревшие к моменту отправки
}

// sendable статусы, допускающие (повторную) отправку
var sendable = []domain.InviteStatus{domain.InviteUninvited, domain.InviteSent}

func newResponse(meetingID int64, results []domain.DeliveryResult) *Response {
	resp := &Response{MeetingID: meetingID, Results: results}
	for _, r := range results {
		switch {
		case r.Delivered:
			resp.Sent++
		case r.Skipped:
			resp.Skipped++
		default:
			resp.Failed++
		}
	}
	return resp
}
