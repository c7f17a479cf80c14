package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
)

// UseCase use case для отмены встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute отменяет встречу и возвращает слот в доступные
// Статус встречи и слота меняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	var result *domain.Appointment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем встречу с блокировкой (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2. Определяем роль отменяющего
		role, ok := appointment.RoleOf(req.UserID)
		if !ok {
			uc.logger.Warn("CancelAppointment: user=%d is not a participant of appointment id=%d",
				req.UserID, appointment.ID)
			return ErrUnauthorized
		}

		// 3. Отменить можно только запланированную встречу
		if !appointment.IsScheduled() {
			uc.logger.Warn("CancelAppointment: appointment id=%d is %s", appointment.ID, appointment.Status)
			return ErrAlreadyFinalized
		}

		// 4. Меняем статус встречи
		status := domain.CancelledStatusFor(role)
		if err := uc.appointmentRepo.UpdateStatusIf(txCtx, appointment.ID, domain.AppointmentScheduled, status); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				uc.logger.Warn("CancelAppointment: appointment id=%d finalized concurrently", appointment.ID)
				return ErrAlreadyFinalized
			}
			uc.logger.Error("CancelAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		// 5. Освобождаем слот
		if err := uc.slotRepo.UpdateStatusIf(txCtx, appointment.SlotID, domain.SlotBooked, domain.SlotAvailable); err != nil {
			uc.logger.Error("CancelAppointment: failed to release slot id=%d: %v", appointment.SlotID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		appointment.Status = status
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d is %s, slot id=%d released",
		result.ID, result.Status, result.SlotID)

	return &Response{Appointment: result}, nil
}
