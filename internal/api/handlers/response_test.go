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

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "слот занят"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		SlotID int64 `json:"slotId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slotId": 42}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, int64(42), dst.SlotID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"slotId": 1, "extra": true}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)
}
