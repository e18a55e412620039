package send_invites

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	sendInvites "github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
)

type stubUseCase struct {
	resp       *sendInvites.Response
	err        error
	meetingID  int64
	categoryID int64
	inviteID   int64
}

func (s *stubUseCase) SendOne(_ context.Context, inviteID int64) (*sendInvites.Response, error) {
	s.inviteID = inviteID
	return s.resp, s.err
}

func (s *stubUseCase) SendAll(_ context.Context, meetingID int64) (*sendInvites.Response, error) {
	s.meetingID = meetingID
	return s.resp, s.err
}

func (s *stubUseCase) SendCategory(_ context.Context, meetingID, categoryID int64) (*sendInvites.Response, error) {
	s.meetingID = meetingID
	s.categoryID = categoryID
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func call(fn http.HandlerFunc, vars map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r = mux.SetURLVars(r, vars)
	w := httptest.NewRecorder()
	fn(w, r)
	return w
}

func TestSendAll_ReportsPartialFailure(t *testing.T) {
	uc := &stubUseCase{resp: &sendInvites.Response{
		MeetingID: 3,
		Results: []domain.DeliveryResult{
			{InviteID: 1, CustomerID: 10, Delivered: true, NotificationCount: 1},
			{InviteID: 2, CustomerID: 11, Err: errors.New("carrier rejected")},
			{InviteID: 3, CustomerID: 12, Skipped: true, Err: sendInvites.ErrInviteClosed},
		},
		Sent:    1,
		Failed:  1,
		Skipped: 1,
	}}
	h := NewHandler(uc, nopLogger{})

	w := call(h.SendAll, map[string]string{"meetingId": "3"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), uc.meetingID)

	var resp SendResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Results, 3)
	assert.Nil(t, resp.Results[0].Error)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "carrier rejected", *resp.Results[1].Error)
	assert.True(t, resp.Results[2].Skipped)
}

func TestSendOne_FailedDeliveryIsBadGateway(t *testing.T) {
	uc := &stubUseCase{resp: &sendInvites.Response{
		Results: []domain.DeliveryResult{{InviteID: 5, Err: errors.New("timeout")}},
		Failed:  1,
	}}
	h := NewHandler(uc, nopLogger{})

	w := call(h.SendOne, map[string]string{"inviteId": "5"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, int64(5), uc.inviteID)
}

func TestSendCategory_ParsesBothIDs(t *testing.T) {
	uc := &stubUseCase{resp: &sendInvites.Response{MeetingID: 3}}
	h := NewHandler(uc, nopLogger{})

	w := call(h.SendCategory, map[string]string{"meetingId": "3", "categoryId": "9"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), uc.meetingID)
	assert.Equal(t, int64(9), uc.categoryID)

	w = call(h.SendCategory, map[string]string{"meetingId": "3", "categoryId": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSend_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"meeting not found", sendInvites.ErrMeetingNotFound, http.StatusNotFound},
		{"invite not found", sendInvites.ErrInviteNotFound, http.StatusNotFound},
		{"meeting closed", sendInvites.ErrMeetingClosed, http.StatusConflict},
		{"invite closed", sendInvites.ErrInviteClosed, http.StatusConflict},
		{"invalid", sendInvites.ErrInvalidInput, http.StatusBadRequest},
		{"internal", sendInvites.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			w := call(h.SendOne, map[string]string{"inviteId": "1"})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
