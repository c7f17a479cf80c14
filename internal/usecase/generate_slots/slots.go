package generate_slots

import (
	"fmt"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

const minutesPerDay = 24 * 60

// GenerateSlots разбивает окно доступности на получасовые слоты
// на горизонте [дата now, дата now + HorizonDays] включительно.
// now уже переведено в часовой пояс ментора.
// Кандидаты, пересекающиеся с existing, пропускаются. Результат упорядочен по (дата, начало).
func GenerateSlots(rule *domain.AvailabilityRule, isRecurring bool, now time.Time, existing []*domain.Slot) ([]*domain.Slot, error) {
	return GenerateSlotsFrom(rule, isRecurring, types.DateOnly(now), now, existing)
}

// GenerateSlotsFrom то же, что GenerateSlots, но горизонт начинается с календарной даты startDate.
// Прошедшие дни пропускаются целиком, сегодняшний день обрезается от now до следующего получаса.
func GenerateSlotsFrom(rule *domain.AvailabilityRule, isRecurring bool, startDate, now time.Time, existing []*domain.Slot) ([]*domain.Slot, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	ruleStart, err := rule.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidRule, err)
	}
	ruleEnd, err := rule.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidRule, err)
	}

	startDate = types.DateOnly(startDate)
	horizon := domain.HorizonDays(isRecurring)

	var result []*domain.Slot
	for offset := 0; offset <= horizon; offset++ {
		date := startDate.AddDate(0, 0, offset)
		if types.WeekdayMondayFirst(date) != rule.DayOfWeek {
			continue
		}

		start := ruleStart
		if rule.StartTime.OnDate(date, now.Location()).Before(now) {
			if !types.IsSameDay(date, now) {
				continue
			}
			start = clipToNextHalfHour(now)
		}

		for begin := start; begin+domain.SlotDurationMinutes <= ruleEnd; begin += domain.SlotDurationMinutes {
			candidate, err := newSlot(rule, date, begin)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
			}
			if overlapsAny(candidate, existing) {
				continue
			}
			result = append(result, candidate)
		}
	}

	return result, nil
}

// clipToNextHalfHour округляет now вниз до получаса и добавляет 30 минут: 09:47 -> 10:00, 10:00 -> 10:30
func clipToNextHalfHour(now time.Time) int {
	minutes := now.Hour()*60 + now.Minute()
	clipped := minutes - minutes%domain.SlotDurationMinutes + domain.SlotDurationMinutes
	if clipped > minutesPerDay {
		return minutesPerDay
	}
	return clipped
}

func newSlot(rule *domain.AvailabilityRule, date time.Time, begin int) (*domain.Slot, error) {
	start, err := types.NewTimeStringFromMinutes(begin)
	if err != nil {
		return nil, err
	}
	end, err := start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	return &domain.Slot{
		AvailabilityID: rule.ID,
		MentorID:       rule.MentorID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.SlotAvailable,
	}, nil
}

func overlapsAny(candidate *domain.Slot, existing []*domain.Slot) bool {
	for _, slot := range existing {
		if slot.Overlaps(candidate) {
			return true
		}
	}
	return false
}
