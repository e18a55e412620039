package send_invites

import (
	sendInvites "github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

// DeliveryResponse результат отправки одного приглашения
type DeliveryResponse struct {
	InviteID          int64   `json:"inviteId"`
	CustomerID        int64   `json:"customerId"`
	Delivered         bool    `json:"delivered"`
	Skipped           bool    `json:"skipped"`
	NotificationCount int     `json:"notificationCount"`
	Error             *string `json:"error,omitempty"`
}

// SendResponse HTTP response model
type SendResponse struct {
	MeetingID int64              `json:"meetingId"`
	Sent      int                `json:"sent"`
	Failed    int                `json:"failed"`
	Skipped   int                `json:"skipped"`
	Results   []DeliveryResponse `json:"results"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *sendInvites.Response) *SendResponse {
	results := make([]DeliveryResponse, 0, len(resp.Results))
	for _, r := range resp.Results {
		item := DeliveryResponse{
			InviteID:          r.InviteID,
			CustomerID:        r.CustomerID,
			Delivered:         r.Delivered,
			Skipped:           r.Skipped,
			NotificationCount: r.NotificationCount,
		}
		if r.Err != nil {
			msg := r.Err.Error()
			item.Error = &msg
		}
		results = append(results, item)
	}

	return &SendResponse{
		MeetingID: resp.MeetingID,
		Sent:      resp.Sent,
		Failed:    resp.Failed,
		Skipped:   resp.Skipped,
		Results:   results,
	}
}
