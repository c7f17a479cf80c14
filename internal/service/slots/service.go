package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	mentorRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/mentor"
	slotRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/slot"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// Service сервис для поиска слотов и ручной смены их статуса
type Service struct {
	mentorRepo   MentorRepository
	slotRepo     SlotRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	mentorRepo MentorRepository,
	slotRepo SlotRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		mentorRepo:   mentorRepo,
		slotRepo:     slotRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListAvailable ищет свободные слоты начиная с сегодняшнего дня (в часовом поясе расписания)
func (s *Service) ListAvailable(ctx context.Context, req *models.ListAvailableRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListAvailable: date=%v, specialization=%v", req.Date, req.Specialization)

	fromDate := s.today()
	if req.StartDate != nil && req.StartDate.After(fromDate) {
		fromDate = types.DateOnly(*req.StartDate)
	}

	filter := domain.AvailableSlotsFilter{
		FromDate:       fromDate,
		ToDate:         req.EndDate,
		Date:           req.Date,
		Specialization: req.Specialization,
	}

	listings, err := s.slotRepo.ListAvailable(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: found %d slots", len(listings))
	return models.FromDomainListingList(listings), nil
}

// ListForUser возвращает слоты с учетом роли:
// ментор видит свои слоты в любом статусе, остальные - только свободные
func (s *Service) ListForUser(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListForUser: user=%d", req.UserID)

	mentor, err := s.mentorRepo.GetByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, mentorRepo.ErrMentorNotFound) {
		s.logger.Error("ListForUser: failed to get mentor for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForUser - get mentor: %v", ErrInternal, err)
	}

	// Обычный пользователь
	if mentor == nil {
		return s.ListAvailable(ctx, &models.ListAvailableRequest{StartDate: req.StartDate, EndDate: req.EndDate})
	}

	filter := domain.MentorSlotsFilter{
		MentorID:  mentor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != nil {
		status, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForUser: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	slots, err := s.slotRepo.ListByMentor(ctx, filter)
	if err != nil {
		s.logger.Error("ListForUser: repository error for mentor id=%d: %v", mentor.ID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: mentor id=%d has %d slots", mentor.ID, len(slots))
	return models.FromDomainSlotList(slots), nil
}

// Block закрывает свободный слот ментора для бронирования
func (s *Service) Block(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error) {
	return s.changeStatus(ctx, slotID, userID, domain.SlotAvailable, domain.SlotBlocked, "Block")
}

// Unblock возвращает заблокированный слот в свободные
func (s *Service) Unblock(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error) {
	return s.changeStatus(ctx, slotID, userID, domain.SlotBlocked, domain.SlotAvailable, "Unblock")
}

func (s *Service) changeStatus(ctx context.Context, slotID, userID int64, from, to domain.SlotStatus, op string) (*models.SlotResponse, error) {
	s.logger.Info("%s: slot id=%d, user=%d", op, slotID, userID)

	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			s.logger.Warn("%s: user=%d is not a mentor", op, userID)
			return nil, ErrNotMentor
		}
		s.logger.Error("%s: failed to get mentor for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - get mentor: %v", ErrInternal, op, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: failed to get slot id=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - get slot: %v", ErrInternal, op, err)
	}

	if slot.MentorID != mentor.ID {
		s.logger.Warn("%s: slot id=%d belongs to mentor id=%d, not %d", op, slotID, slot.MentorID, mentor.ID)
		return nil, ErrAccessDenied
	}

	if slot.Status != from || !slot.Status.CanTransitionTo(to) {
		s.logger.Warn("%s: slot id=%d is %s, cannot become %s", op, slotID, slot.Status, to)
		return nil, ErrInvalidTransition
	}

	if err := s.slotRepo.UpdateStatusIf(ctx, slot.ID, from, to); err != nil {
		if errors.Is(err, slotRepo.ErrStatusConflict) {
			s.logger.Warn("%s: slot id=%d changed concurrently", op, slotID)
			return nil, ErrStatusConflict
		}
		s.logger.Error("%s: failed to update slot id=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - update slot: %v", ErrInternal, op, err)
	}

	slot.Status = to
	s.logger.Info("%s: slot id=%d is now %s", op, slotID, to)

	resp := models.FromDomainSlot(slot)
	return &resp, nil
}

func (s *Service) today() time.Time {
	return types.DateOnly(s.timeProvider.Now().In(s.location))
}
