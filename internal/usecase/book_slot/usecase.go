package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	slotRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/slot"
)

// UseCase use case для бронирования слота
type UseCase struct {
	slotRepo        SlotRepository
	mentorRepo      MentorRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	metrics         Metrics
	publicURL       string
	newCallID       func() uuid.UUID
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	mentorRepo MentorRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	publicURL string,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		mentorRepo:      mentorRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		metrics:         metrics,
		publicURL:       publicURL,
		newCallID:       uuid.New,
		logger:          logger,
	}
}

// Execute бронирует слот и создает встречу
// Захват слота (available -> booked) и создание встречи выполняются в одной транзакции:
// при любой ошибке слот остается доступным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, slot=%d", req.UserID, req.SlotID)

	var result *domain.Appointment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2. Проверяем статус
		if slot.Status != domain.SlotAvailable {
			uc.logger.Warn("BookSlot: slot id=%d is %s", slot.ID, slot.Status)
			return ErrSlotNotAvailable
		}

		// 3. Получаем ментора слота
		mentor, err := uc.mentorRepo.GetByID(txCtx, slot.MentorID)
		if err != nil {
			uc.logger.Error("BookSlot: failed to get mentor id=%d: %v", slot.MentorID, err)
			return fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
		}

		if mentor.UserID == req.UserID {
			uc.logger.Warn("BookSlot: mentor user=%d tried to book own slot id=%d", req.UserID, slot.ID)
			return ErrOwnSlot
		}

		// 4. Захватываем слот условным обновлением
		if err := uc.slotRepo.UpdateStatusIf(txCtx, slot.ID, domain.SlotAvailable, domain.SlotBooked); err != nil {
			if errors.Is(err, slotRepo.ErrStatusConflict) {
				uc.logger.Warn("BookSlot: slot id=%d was taken concurrently", slot.ID)
				return ErrBookingConflict
			}
			uc.logger.Error("BookSlot: failed to book slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		// 5. Создаем встречу со снимком даты и времени слота
		callID := uc.newCallID()
		appointment := &domain.Appointment{
			SlotID:        slot.ID,
			UserID:        req.UserID,
			MentorID:      mentor.ID,
			MentorUserID:  mentor.UserID,
			Date:          slot.Date,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			Status:        domain.AppointmentScheduled,
			VideoCallID:   callID,
			VideoCallLink: domain.BuildVideoCallLink(uc.publicURL, callID),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotAlreadyTaken) {
				uc.logger.Warn("BookSlot: slot id=%d already has an active appointment", slot.ID)
				return ErrBookingConflict
			}
			uc.logger.Error("BookSlot: failed to create appointment for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: appointment id=%d created for slot id=%d, call=%s",
		result.ID, result.SlotID, result.VideoCallID)

	return &Response{Appointment: result}, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.IncBooking(outcomeSuccess)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncBooking(outcomeNotAvailable)
	case errors.Is(err, ErrBookingConflict):
		uc.metrics.IncBooking(outcomeConflict)
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrOwnSlot):
		uc.metrics.IncBooking(outcomeRejected)
	default:
		uc.metrics.IncBooking(outcomeError)
	}
}
