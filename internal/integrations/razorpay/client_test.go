package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var body createOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(15000), body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, 1, body.PaymentCapture)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{ID: "order_abc", Amount: body.Amount, Currency: body.Currency, Status: "created"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_id", "key_secret", time.Second, logger.NewNop())
	orderID, err := c.CreateOrder(context.Background(), types.NewMoney(150, 0), "INR", "appointment_55")

	require.NoError(t, err)
	assert.Equal(t, "order_abc", orderID)
}

func TestClient_CreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`, ErrInvalidRequest},
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrUnauthorized},
		{"server error", http.StatusBadGateway, `oops`, ErrInvalidResponse},
		{"empty id", http.StatusOK, `{"id":""}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "id", "secret", time.Second, logger.NewNop())
			_, err := c.CreateOrder(context.Background(), types.NewMoney(1, 0), "INR", "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_VerifySignature(t *testing.T) {
	c := NewClient("http://unused", "id", "secret", time.Second, logger.NewNop())

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(mac.Sum(nil))

	ok, err := c.VerifySignature(context.Background(), "order_abc", "pay_xyz", valid)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.VerifySignature(context.Background(), "order_abc", "pay_other", valid)
	require.NoError(t, err)
	assert.False(t, ok)
}
