package create_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	paymentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/payment"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// UseCase use case для создания платежа за завершенный звонок
type UseCase struct {
	appointmentRepo AppointmentRepository
	mentorRepo      MentorRepository
	paymentRepo     PaymentRepository
	provider        PaymentProvider
	minimumCharge   types.Money
	currency        string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	mentorRepo MentorRepository,
	paymentRepo PaymentRepository,
	provider PaymentProvider,
	minimumCharge types.Money,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		mentorRepo:      mentorRepo,
		paymentRepo:     paymentRepo,
		provider:        provider,
		minimumCharge:   minimumCharge,
		currency:        currency,
		logger:          logger,
	}
}

// Execute рассчитывает сумму по длительности звонка и создает заказ у провайдера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePayment: user=%d, call=%s", req.UserID, req.VideoCallID)

	// 1. Получаем встречу
	appointment, err := uc.appointmentRepo.GetByVideoCallID(ctx, req.VideoCallID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CreatePayment: call=%s not found", req.VideoCallID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CreatePayment: failed to get appointment for call=%s: %v", req.VideoCallID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 2. Платит только клиент, и только за завершенный звонок
	if appointment.UserID != req.UserID {
		uc.logger.Warn("CreatePayment: user=%d is not the client of appointment id=%d", req.UserID, appointment.ID)
		return nil, ErrUnauthorized
	}
	if !appointment.IsCompleted() {
		uc.logger.Warn("CreatePayment: appointment id=%d is %s", appointment.ID, appointment.Status)
		return nil, ErrNotCompleted
	}

	// 3. Проверяем, что платеж еще не создан
	if _, err := uc.paymentRepo.GetByAppointmentID(ctx, appointment.ID); err == nil {
		uc.logger.Warn("CreatePayment: payment for appointment id=%d already exists", appointment.ID)
		return nil, ErrPaymentExists
	} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		uc.logger.Error("CreatePayment: failed to get payment for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// 4. Рассчитываем сумму по ставке ментора
	mentor, err := uc.mentorRepo.GetByID(ctx, appointment.MentorID)
	if err != nil {
		uc.logger.Error("CreatePayment: failed to get mentor id=%d: %v", appointment.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	duration := 0
	if appointment.CallDurationSeconds != nil {
		duration = *appointment.CallDurationSeconds
	}
	amount := domain.CalculateAmount(duration, mentor.HourlyRate, uc.minimumCharge)

	uc.logger.Info("CreatePayment: appointment id=%d, duration=%ds, rate=%s, amount=%s",
		appointment.ID, duration, mentor.HourlyRate, amount)

	// 5. Создаем заказ у провайдера
	receipt := fmt.Sprintf("appointment_%d", appointment.ID)
	orderID, err := uc.provider.CreateOrder(ctx, amount, uc.currency, receipt)
	if err != nil {
		uc.logger.Error("CreatePayment: %s failed to create order for appointment id=%d: %v",
			uc.provider.Name(), appointment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	// 6. Сохраняем платеж в статусе pending
	payment, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		AppointmentID:   appointment.ID,
		UserID:          appointment.UserID,
		MentorID:        appointment.MentorID,
		Amount:          amount,
		Currency:        uc.currency,
		Provider:        uc.provider.Name(),
		ProviderOrderID: orderID,
		Status:          domain.PaymentPending,
	})
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentExists) {
			uc.logger.Warn("CreatePayment: payment for appointment id=%d created concurrently", appointment.ID)
			return nil, ErrPaymentExists
		}
		uc.logger.Error("CreatePayment: failed to save payment for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: failed to save payment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePayment: payment id=%d, order=%s", payment.ID, payment.ProviderOrderID)

	return &Response{Payment: payment}, nil
}
