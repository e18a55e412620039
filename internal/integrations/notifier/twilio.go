package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioDispatcher отправляет SMS через Twilio
type TwilioDispatcher struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioDispatcher создает диспетчер Twilio
func NewTwilioDispatcher(accountSID, authToken, from string, timeout time.Duration) *TwilioDispatcher {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &TwilioDispatcher{client: client, from: from}
}

// Dispatch отправляет сообщение на номер телефона
func (d *TwilioDispatcher) Dispatch(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.Contains(to, "@") {
		return fmt.Errorf("%w: twilio sends sms only, got %s", ErrUnsupportedAddress, to)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(d.from)
	params.SetBody(body)

	resp, err := d.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.ErrorCode != nil {
		return fmt.Errorf("twilio error code %d", *resp.ErrorCode)
	}

	return nil
}
