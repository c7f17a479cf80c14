package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	availabilityRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/availability"
	mentorRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/mentor"
	"github.com/Arunkino/MindHaven-Backend/internal/service/availability/models"
	"github.com/Arunkino/MindHaven-Backend/pkg/ptr"
)

// Service сервис для работы с правилами доступности ментора
type Service struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// ListRules возвращает правила доступности ментора
func (s *Service) ListRules(ctx context.Context, userID int64) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: fetching rules for user=%d", userID)

	var rules []*domain.AvailabilityRule
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		mentor, err := s.getMentor(txCtx, userID, "ListRules")
		if err != nil {
			return err
		}

		rules, err = s.availabilityRepo.ListByMentor(txCtx, mentor.ID)
		if err != nil {
			s.logger.Error("ListRules: repository error for mentor id=%d: %v", mentor.ID, err)
			return fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListRules: fetched %d rules for user=%d", len(rules), userID)
	return models.FromDomainRuleList(rules), nil
}

// DeleteRule удаляет правило вместе с его свободными слотами
// Удаление запрещено, пока у правила есть забронированные слоты
// или слоты, на которые ссылаются прошлые встречи
func (s *Service) DeleteRule(ctx context.Context, ruleID, userID int64) error {
	s.logger.Info("DeleteRule: rule id=%d, user=%d", ruleID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		mentor, err := s.getMentor(txCtx, userID, "DeleteRule")
		if err != nil {
			return err
		}

		// Блокируем правило (FOR UPDATE), чтобы параллельная генерация дождалась удаления
		rule, err := s.availabilityRepo.GetByID(txCtx, ruleID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
				s.logger.Warn("DeleteRule: rule id=%d not found", ruleID)
				return ErrRuleNotFound
			}
			s.logger.Error("DeleteRule: failed to get rule id=%d: %v", ruleID, err)
			return fmt.Errorf("%w: DeleteRule - get rule: %v", ErrInternal, err)
		}
		if rule.MentorID != mentor.ID {
			s.logger.Warn("DeleteRule: rule id=%d belongs to mentor id=%d, not %d", ruleID, rule.MentorID, mentor.ID)
			return ErrRuleNotFound
		}

		booked, err := s.slotRepo.CountByAvailability(txCtx, rule.ID, ptr.Ptr(domain.SlotBooked))
		if err != nil {
			s.logger.Error("DeleteRule: failed to count booked slots of rule id=%d: %v", rule.ID, err)
			return fmt.Errorf("%w: DeleteRule - count booked slots: %v", ErrInternal, err)
		}
		if booked > 0 {
			s.logger.Warn("DeleteRule: rule id=%d has %d booked slots", rule.ID, booked)
			return ErrRuleHasBookedSlots
		}

		referenced, err := s.slotRepo.CountReferenced(txCtx, rule.ID)
		if err != nil {
			s.logger.Error("DeleteRule: failed to count referenced slots of rule id=%d: %v", rule.ID, err)
			return fmt.Errorf("%w: DeleteRule - count referenced slots: %v", ErrInternal, err)
		}
		if referenced > 0 {
			s.logger.Warn("DeleteRule: rule id=%d has %d slots with appointment history", rule.ID, referenced)
			return ErrRuleHasHistory
		}

		removed, err := s.slotRepo.DeleteUnreferenced(txCtx, rule.ID)
		if err != nil {
			s.logger.Error("DeleteRule: failed to delete slots of rule id=%d: %v", rule.ID, err)
			return fmt.Errorf("%w: DeleteRule - delete slots: %v", ErrInternal, err)
		}

		if err := s.availabilityRepo.Delete(txCtx, rule.ID); err != nil {
			switch {
			case errors.Is(err, availabilityRepo.ErrRuleInUse):
				s.logger.Warn("DeleteRule: rule id=%d still has slots", rule.ID)
				return ErrRuleHasHistory
			case errors.Is(err, availabilityRepo.ErrRuleNotFound):
				return ErrRuleNotFound
			default:
				s.logger.Error("DeleteRule: failed to delete rule id=%d: %v", rule.ID, err)
				return fmt.Errorf("%w: DeleteRule - delete rule: %v", ErrInternal, err)
			}
		}

		s.logger.Info("DeleteRule: rule id=%d deleted with %d slots", rule.ID, removed)
		return nil
	})

	return err
}

func (s *Service) getMentor(ctx context.Context, userID int64, op string) (*domain.Mentor, error) {
	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			s.logger.Warn("%s: user=%d is not a mentor", op, userID)
			return nil, ErrNotMentor
		}
		s.logger.Error("%s: failed to get mentor for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - get mentor: %v", ErrInternal, op, err)
	}
	return mentor, nil
}
