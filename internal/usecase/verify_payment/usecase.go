package verify_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	paymentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/payment"
)

// UseCase use case для подтверждения платежа
type UseCase struct {
	paymentRepo PaymentRepository
	verifier    PaymentVerifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(paymentRepo PaymentRepository, verifier PaymentVerifier, logger Logger) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		verifier:    verifier,
		logger:      logger,
	}
}

// Execute проверяет подпись у провайдера и переводит платеж в completed или failed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: user=%d, payment=%d", req.UserID, req.PaymentID)

	// 1. Получаем платеж
	payment, err := uc.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("VerifyPayment: payment id=%d not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("VerifyPayment: failed to get payment id=%d: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// 2. Проверяем владельца и состояние
	if payment.UserID != req.UserID {
		uc.logger.Warn("VerifyPayment: user=%d is not the owner of payment id=%d", req.UserID, payment.ID)
		return nil, ErrUnauthorized
	}
	if req.OrderID != "" && req.OrderID != payment.ProviderOrderID {
		uc.logger.Warn("VerifyPayment: order %s does not match payment id=%d", req.OrderID, payment.ID)
		return nil, ErrOrderMismatch
	}
	if payment.Status != domain.PaymentPending {
		uc.logger.Warn("VerifyPayment: payment id=%d is %s", payment.ID, payment.Status)
		return nil, ErrAlreadyProcessed
	}

	// 3. Проверяем подпись у провайдера
	valid, err := uc.verifier.VerifySignature(ctx, payment.ProviderOrderID, req.ProviderPaymentID, req.Signature)
	if err != nil {
		uc.logger.Error("VerifyPayment: %s verification failed for payment id=%d: %v", uc.verifier.Name(), payment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	status := domain.PaymentCompleted
	if !valid {
		status = domain.PaymentFailed
	}

	// 4. Сохраняем результат, только если платеж все еще pending
	if err := uc.paymentRepo.Complete(ctx, payment.ID, status, req.ProviderPaymentID, req.Signature); err != nil {
		if errors.Is(err, paymentRepo.ErrNotPending) {
			uc.logger.Warn("VerifyPayment: payment id=%d processed concurrently", payment.ID)
			return nil, ErrAlreadyProcessed
		}
		uc.logger.Error("VerifyPayment: failed to update payment id=%d: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
	}

	payment.Status = status
	payment.ProviderPaymentID = &req.ProviderPaymentID
	payment.Signature = &req.Signature

	if !valid {
		uc.logger.Warn("VerifyPayment: invalid signature for payment id=%d", payment.ID)
		return &Response{Payment: payment}, ErrInvalidSignature
	}

	uc.logger.Info("VerifyPayment: payment id=%d completed", payment.ID)

	return &Response{Payment: payment}, nil
}
