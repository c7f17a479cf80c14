package verify_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	verifyPayment "github.com/Arunkino/MindHaven-Backend/internal/usecase/verify_payment"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

type fakeUseCase struct {
	err error
	req *verifyPayment.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *verifyPayment.Request) (*verifyPayment.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &verifyPayment.Response{Payment: &domain.Payment{
		ID:     req.PaymentID,
		Amount: types.NewMoney(150, 0),
		Status: domain.PaymentCompleted,
	}}, nil
}

func serve(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/payments/{paymentId}/verify", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 200))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Verifies(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/payments/7/verify", `{"orderId":"order_1","providerPaymentId":"pay_1","signature":"abc"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &verifyPayment.Request{
		PaymentID:         7,
		UserID:            200,
		OrderID:           "order_1",
		ProviderPaymentID: "pay_1",
		Signature:         "abc",
	}, uc.req)
	assert.Contains(t, rec.Body.String(), `"amount":"150.00"`)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandler_Rejections(t *testing.T) {
	valid := `{"providerPaymentId":"pay_1","signature":"abc"}`

	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/payments/x/verify", body: valid, wantStatus: http.StatusBadRequest},
		{name: "missing signature", path: "/payments/7/verify", body: `{"providerPaymentId":"pay_1"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid signature", path: "/payments/7/verify", body: valid, err: verifyPayment.ErrInvalidSignature, wantStatus: http.StatusBadRequest},
		{name: "processed", path: "/payments/7/verify", body: valid, err: verifyPayment.ErrAlreadyProcessed, wantStatus: http.StatusConflict},
		{name: "provider down", path: "/payments/7/verify", body: valid, err: verifyPayment.ErrPaymentProvider, wantStatus: http.StatusBadGateway},
		{name: "other user", path: "/payments/7/verify", body: valid, err: verifyPayment.ErrUnauthorized, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
