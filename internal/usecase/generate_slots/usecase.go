package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	availabilityRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/availability"
	mentorRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/mentor"
	"github.com/Arunkino/MindHaven-Backend/pkg/ptr"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// UseCase use case для создания окна доступности и генерации слотов
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	metrics          Metrics
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		metrics:          metrics,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute сохраняет правило доступности и генерирует по нему слоты
// Правило сохраняется в транзакции, слоты вставляются по одному условной вставкой:
// вставка, проигравшая параллельной генерации, молча пропускается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: user=%d, day=%d, window=%s-%s, recurring=%t",
		req.UserID, req.DayOfWeek, req.StartTime, req.EndTime, req.IsRecurring)

	// 1. Валидация окна
	rule := &domain.AvailabilityRule{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsRecurring: req.IsRecurring,
	}
	if err := rule.Validate(); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	// 2. Точка отсчета в часовом поясе расписания
	// CurrentDate задает только первую дату горизонта, обрезка сегодняшнего дня всегда идет от реального времени
	now := uc.timeProvider.Now().In(uc.location)
	startDate := types.DateOnly(now)
	if req.CurrentDate != nil {
		startDate = types.DateOnly(*req.CurrentDate)
	}

	// 3. Получаем ментора по пользователю
	mentor, err := uc.mentorRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			uc.logger.Warn("GenerateSlots: user id=%d is not a mentor", req.UserID)
			return nil, ErrNotMentor
		}
		uc.logger.Error("GenerateSlots: failed to get mentor for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}
	rule.MentorID = mentor.ID

	// 4. Сохраняем правило
	var saved *domain.AvailabilityRule
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		saved, txErr = uc.saveRule(txCtx, rule, req.RuleID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// 5. Загружаем существующие слоты ментора на горизонте
	endDate := startDate.AddDate(0, 0, domain.HorizonDays(saved.IsRecurring))
	existing, err := uc.slotRepo.ListByMentor(ctx, domain.MentorSlotsFilter{
		MentorID:  mentor.ID,
		StartDate: ptr.Ptr(startDate),
		EndDate:   &endDate,
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list slots for mentor id=%d: %v", mentor.ID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 6. Генерируем кандидатов
	candidates, err := GenerateSlotsFrom(saved, saved.IsRecurring, startDate, now, existing)
	if err != nil {
		uc.logger.Warn("GenerateSlots: generation failed for rule id=%d: %v", saved.ID, err)
		return nil, err
	}

	// 7. Вставляем слоты с проверкой пересечений на стороне БД
	created := make([]*domain.Slot, 0, len(candidates))
	skipped := 0
	for _, candidate := range candidates {
		inserted, err := uc.slotRepo.InsertIfNoOverlap(ctx, candidate)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to insert slot %s %s: %v",
				candidate.Date.Format(domain.DateFormat), candidate.StartTime, err)
			return nil, fmt.Errorf("%w: failed to insert slot: %v", ErrInternal, err)
		}
		if !inserted {
			skipped++
			continue
		}
		created = append(created, candidate)
	}

	if uc.metrics != nil {
		uc.metrics.AddSlots(len(created), skipped)
	}

	uc.logger.Info("GenerateSlots: rule id=%d, created=%d, skipped=%d", saved.ID, len(created), skipped)

	return &Response{
		Rule:         saved,
		CreatedSlots: created,
		SkippedCount: skipped,
	}, nil
}

// saveRule создает правило (или обновляет флаг повторения у такого же окна)
// либо изменяет правило по ID, удаляя его несвязанные слоты перед перегенерацией
func (uc *UseCase) saveRule(ctx context.Context, rule *domain.AvailabilityRule, ruleID *int64) (*domain.AvailabilityRule, error) {
	if ruleID == nil {
		saved, err := uc.availabilityRepo.Upsert(ctx, rule)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to upsert rule: %v", err)
			return nil, fmt.Errorf("%w: failed to upsert rule: %v", ErrInternal, err)
		}
		return saved, nil
	}

	rule.ID = *ruleID
	saved, err := uc.availabilityRepo.Update(ctx, rule)
	if err != nil {
		switch {
		case errors.Is(err, availabilityRepo.ErrRuleNotFound):
			uc.logger.Warn("GenerateSlots: rule id=%d not found for mentor id=%d", *ruleID, rule.MentorID)
			return nil, ErrRuleNotFound
		case errors.Is(err, availabilityRepo.ErrRuleExists):
			uc.logger.Warn("GenerateSlots: rule id=%d collides with another window", *ruleID)
			return nil, ErrRuleExists
		default:
			uc.logger.Error("GenerateSlots: failed to update rule id=%d: %v", *ruleID, err)
			return nil, fmt.Errorf("%w: failed to update rule: %v", ErrInternal, err)
		}
	}

	// Забронированные слоты и слоты с историей встреч остаются
	removed, err := uc.slotRepo.DeleteUnreferenced(ctx, saved.ID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to delete slots of rule id=%d: %v", saved.ID, err)
		return nil, fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
	}
	uc.logger.Info("GenerateSlots: rule id=%d updated, %d stale slots removed", saved.ID, removed)

	return saved, nil
}
