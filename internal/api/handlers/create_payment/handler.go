package create_payment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	createPayment "github.com/Arunkino/MindHaven-Backend/internal/usecase/create_payment"
)

const (
	msgInvalidCallID   = "некорректный ID звонка"
	msgNotFound        = "встреча для звонка не найдена"
	msgForbidden       = "оплатить звонок может только клиент встречи"
	msgNotCompleted    = "звонок еще не завершен"
	msgPaymentExists   = "платеж за звонок уже создан"
	msgPaymentProvider = "платежный провайдер недоступен"
)

type Handler struct {
	useCase CreatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calls/{videoCallId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	videoCallID, err := uuid.Parse(mux.Vars(r)["videoCallId"])
	if err != nil {
		h.logger.Warn("POST /calls/{id}/payments - Invalid call ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCallID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createPayment.Request{
		VideoCallID: videoCallID,
		UserID:      userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, createPayment.ErrAppointmentNotFound):
			h.logger.Warn("POST /calls/{id}/payments - Appointment not found: call=%s", videoCallID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createPayment.ErrUnauthorized):
			h.logger.Warn("POST /calls/{id}/payments - Not the booking user: call=%s, user_id=%d", videoCallID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPayment.ErrNotCompleted):
			h.logger.Warn("POST /calls/{id}/payments - Call not completed: call=%s", videoCallID)
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, createPayment.ErrPaymentExists):
			h.logger.Warn("POST /calls/{id}/payments - Payment exists: call=%s", videoCallID)
			handlers.RespondConflict(w, msgPaymentExists)

		case errors.Is(err, createPayment.ErrPaymentProvider):
			h.logger.Error("POST /calls/{id}/payments - Provider failed: call=%s, error=%v", videoCallID, err)
			handlers.RespondBadGateway(w, msgPaymentProvider)

		default:
			h.logger.Error("POST /calls/{id}/payments - Failed to create payment: call=%s, error=%v", videoCallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calls/{id}/payments - Payment created: payment_id=%d, call=%s, amount=%s",
		result.Payment.ID, videoCallID, result.Payment.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainPayment(result.Payment))
}
