package verify_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers/create_payment"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	verifyPayment "github.com/Arunkino/MindHaven-Backend/internal/usecase/verify_payment"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "providerPaymentId и signature обязательны"
	msgNotFound           = "платеж не найден"
	msgForbidden          = "доступ запрещен"
	msgOrderMismatch      = "заказ не соответствует платежу"
	msgAlreadyProcessed   = "платеж уже обработан"
	msgInvalidSignature   = "подпись платежа недействительна"
	msgPaymentProvider    = "платежный провайдер недоступен"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	paymentID, err := strconv.ParseInt(mux.Vars(r)["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /payments/{id}/verify - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ProviderPaymentID == "" || req.Signature == "" {
		h.logger.Warn("POST /payments/{id}/verify - Missing fields: payment_id=%d", paymentID)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(paymentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/{id}/verify - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verifyPayment.ErrUnauthorized):
			h.logger.Warn("POST /payments/{id}/verify - Access denied: payment_id=%d, user_id=%d", paymentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, verifyPayment.ErrOrderMismatch):
			h.logger.Warn("POST /payments/{id}/verify - Order mismatch: payment_id=%d", paymentID)
			handlers.RespondBadRequest(w, msgOrderMismatch)

		case errors.Is(err, verifyPayment.ErrAlreadyProcessed):
			h.logger.Warn("POST /payments/{id}/verify - Already processed: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, verifyPayment.ErrInvalidSignature):
			h.logger.Warn("POST /payments/{id}/verify - Invalid signature: payment_id=%d", paymentID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, verifyPayment.ErrPaymentProvider):
			h.logger.Error("POST /payments/{id}/verify - Provider failed: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondBadGateway(w, msgPaymentProvider)

		default:
			h.logger.Error("POST /payments/{id}/verify - Failed to verify payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/{id}/verify - Payment verified: payment_id=%d, status=%s", paymentID, result.Payment.Status)
	handlers.RespondJSON(w, http.StatusOK, create_payment.FromDomainPayment(result.Payment))
}
