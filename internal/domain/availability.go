package domain

import (
	"fmt"
	"time"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// AvailabilityRule is a mentor's weekly time window.
// DayOfWeek is 0 for Monday through 6 for Sunday.
type AvailabilityRule struct {
	ID          int64
	MentorID    int64
	DayOfWeek   int
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the day of week and that start is strictly before end
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < MinDayOfWeek || r.DayOfWeek > MaxDayOfWeek {
		return fmt.Errorf("%w: day_of_week %d out of range", ErrInvalidRule, r.DayOfWeek)
	}
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidRule, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidRule, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: start_time %s must be before end_time %s", ErrInvalidRule, r.StartTime, r.EndTime)
	}
	return nil
}

// HorizonDays returns how many days ahead slots are generated
func HorizonDays(isRecurring bool) int {
	if isRecurring {
		return RecurringHorizonDays
	}
	return OneOffHorizonDays
}
