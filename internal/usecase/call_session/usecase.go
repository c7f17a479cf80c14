package call_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
)

// UseCase use case жизненного цикла звонка: подключение и завершение
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// RecordJoin отмечает подключение участника
// Строка встречи блокируется (FOR UPDATE), поэтому одновременные подключения
// клиента и ментора видят флаги друг друга и время начала ставится один раз
func (uc *UseCase) RecordJoin(ctx context.Context, req *JoinRequest) (*JoinResponse, error) {
	uc.logger.Info("RecordJoin: user=%d, call=%s", req.UserID, req.VideoCallID)

	var result *JoinResponse

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем встречу с блокировкой
		appointment, err := uc.getAppointment(txCtx, req.VideoCallID, "RecordJoin")
		if err != nil {
			return err
		}

		// 2. Определяем роль
		role, ok := appointment.RoleOf(req.UserID)
		if !ok {
			uc.logger.Warn("RecordJoin: user=%d is not a participant of call=%s", req.UserID, req.VideoCallID)
			return ErrUnauthorized
		}

		// 3. Подключаться можно только к назначенной встрече
		if !appointment.IsScheduled() {
			uc.logger.Warn("RecordJoin: appointment id=%d is %s", appointment.ID, appointment.Status)
			return ErrAlreadyFinalized
		}

		// 4. Ставим флаг и, если оба в звонке, время начала
		started := appointment.RecordJoin(role, uc.timeProvider.Now())

		if err := uc.appointmentRepo.UpdateJoinState(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				uc.logger.Warn("RecordJoin: appointment id=%d finalized concurrently", appointment.ID)
				return ErrAlreadyFinalized
			}
			uc.logger.Error("RecordJoin: failed to save join state for appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to save join state: %v", ErrInternal, err)
		}

		result = &JoinResponse{Appointment: appointment, Role: role, CallStarted: started}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordJoin: %s joined appointment id=%d, started=%t",
		result.Role, result.Appointment.ID, result.CallStarted)

	return result, nil
}

// RecordCallEnd завершает звонок и фиксирует длительность для биллинга
// Повторное завершение получает ErrAlreadyEnded, завершение отмененной встречи - ErrAlreadyFinalized
func (uc *UseCase) RecordCallEnd(ctx context.Context, req *EndRequest) (*EndResponse, error) {
	uc.logger.Info("RecordCallEnd: user=%d, call=%s, duration=%ds", req.UserID, req.VideoCallID, req.DurationSeconds)

	// 1. Валидация длительности
	if req.DurationSeconds < 0 {
		uc.logger.Warn("RecordCallEnd: negative duration %d", req.DurationSeconds)
		return nil, ErrInvalidDuration
	}

	// 2. Получаем встречу
	appointment, err := uc.getAppointment(ctx, req.VideoCallID, "RecordCallEnd")
	if err != nil {
		return nil, err
	}

	// 3. Проверяем участника
	if !appointment.IsParticipant(req.UserID) {
		uc.logger.Warn("RecordCallEnd: user=%d is not a participant of call=%s", req.UserID, req.VideoCallID)
		return nil, ErrUnauthorized
	}

	if err := finalizedError(appointment); err != nil {
		uc.logger.Warn("RecordCallEnd: appointment id=%d is %s", appointment.ID, appointment.Status)
		return nil, err
	}

	// 4. Условное обновление: выигрывает только первый завершивший
	now := uc.timeProvider.Now()
	if err := uc.appointmentRepo.CompleteCall(ctx, appointment.ID, req.DurationSeconds, now); err != nil {
		if !errors.Is(err, appointmentRepo.ErrStatusConflict) {
			uc.logger.Error("RecordCallEnd: failed to complete appointment id=%d: %v", appointment.ID, err)
			return nil, fmt.Errorf("%w: failed to complete call: %v", ErrInternal, err)
		}

		// Статус изменился параллельно, перечитываем причину
		current, getErr := uc.getAppointment(ctx, req.VideoCallID, "RecordCallEnd")
		if getErr != nil {
			return nil, getErr
		}
		uc.logger.Warn("RecordCallEnd: appointment id=%d changed concurrently to %s", current.ID, current.Status)
		if finalErr := finalizedError(current); finalErr != nil {
			return nil, finalErr
		}
		return nil, ErrAlreadyFinalized
	}

	appointment.RecordCallEnd(req.DurationSeconds, now)

	uc.logger.Info("RecordCallEnd: appointment id=%d completed, duration=%ds", appointment.ID, req.DurationSeconds)

	return &EndResponse{Appointment: appointment}, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, videoCallID uuid.UUID, op string) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByVideoCallID(ctx, videoCallID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("%s: call=%s not found", op, videoCallID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("%s: failed to get appointment for call=%s: %v", op, videoCallID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appointment, nil
}

// finalizedError возвращает ошибку для встречи, которая уже не назначена
func finalizedError(a *domain.Appointment) error {
	switch {
	case a.IsScheduled():
		return nil
	case a.IsCompleted():
		return ErrAlreadyEnded
	default:
		return ErrAlreadyFinalized
	}
}
