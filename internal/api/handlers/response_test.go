package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"walk"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "walk", dst.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"walk","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestRespondUnsupported(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondUnsupported(rec, "нет длительности")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ManualOverrideAllowed)
	assert.Equal(t, "нет длительности", body.Error)
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondError_OmitsOverrideHint(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "пересечение")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"пересечение"}`, rec.Body.String())
}
